// Package rest exposes the diary, tutor and writing usecases as a JSON API.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/eslsoft/tutorpad/internal/adapter/mapping"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

// respondWithDomainError picks the status from the error chain.
func respondWithDomainError(w http.ResponseWriter, err error) {
	respondWithError(w, mapping.HTTPStatus(err), err.Error())
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
