package mapping

import (
	"errors"
	"net/http"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/pkg/filterexpr"
)

// HTTPStatus maps domain errors onto HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, entity.ErrDiaryEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidDiaryID),
		errors.Is(err, entity.ErrInvalidDate),
		errors.Is(err, entity.ErrInvalidCategory),
		errors.Is(err, entity.ErrInvalidDifficulty),
		errors.Is(err, entity.ErrEmptyQuestion),
		errors.Is(err, entity.ErrEmptyEssay),
		errors.Is(err, filterexpr.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrDiaryEntryExists), errors.Is(err, entity.ErrReplyPending):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
