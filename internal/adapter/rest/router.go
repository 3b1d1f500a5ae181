package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every API route.
func NewRouter(diary *DiaryHandler, tutor *TutorHandler, writing *WritingHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/diary/entries", diary.ListEntries).Methods(http.MethodGet)
	api.HandleFunc("/diary/entries", diary.CreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/diary/entries/{id}", diary.GetEntry).Methods(http.MethodGet)
	api.HandleFunc("/diary/entries/{id}", diary.UpdateEntry).Methods(http.MethodPut)
	api.HandleFunc("/diary/entries/{id}", diary.DeleteEntry).Methods(http.MethodDelete)
	api.HandleFunc("/diary/dates/{date}", diary.FindByDate).Methods(http.MethodGet)
	api.HandleFunc("/diary/calendar/{year:[0-9]{4}}/{month:[0-9]{1,2}}", diary.Calendar).Methods(http.MethodGet)
	api.HandleFunc("/diary/export", diary.Export).Methods(http.MethodGet)

	api.HandleFunc("/tutor/level", tutor.Level).Methods(http.MethodGet)
	api.HandleFunc("/tutor/messages", tutor.Messages).Methods(http.MethodGet)
	api.HandleFunc("/tutor/messages", tutor.Ask).Methods(http.MethodPost)

	api.HandleFunc("/writing", writing.Snapshot).Methods(http.MethodGet)
	api.HandleFunc("/writing/start", writing.Start).Methods(http.MethodPost)
	api.HandleFunc("/writing/reset", writing.Reset).Methods(http.MethodPost)
	api.HandleFunc("/writing/submit", writing.Submit).Methods(http.MethodPost)
	api.HandleFunc("/writing/text", writing.SetText).Methods(http.MethodPut)

	return r
}
