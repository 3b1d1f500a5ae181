package repository

import (
	"context"

	"github.com/eslsoft/tutorpad/internal/entity"
)

// ListDiaryQuery holds parameters for listing diary entries.
type ListDiaryQuery struct {
	Pagination
	FilterOrder
}

// DiaryRepository abstracts the session diary so usecases stay storage agnostic.
// Collection order is insertion order; FindByDate returns the first match in that order.
type DiaryRepository interface {
	Create(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error)
	Update(ctx context.Context, entry *entity.DiaryEntry) (*entity.DiaryEntry, error)
	GetByID(ctx context.Context, id string) (*entity.DiaryEntry, error)
	FindByDate(ctx context.Context, date entity.Date) (*entity.DiaryEntry, error)
	List(ctx context.Context, query *ListDiaryQuery) ([]entity.DiaryEntry, int64, error)
	Delete(ctx context.Context, id string) error
}
