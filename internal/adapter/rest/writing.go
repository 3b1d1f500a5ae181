package rest

import (
	"net/http"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/usecase/writing"
)

// WritingHandler serves the timed essay practice.
type WritingHandler struct {
	session *writing.Session
}

func NewWritingHandler(session *writing.Session) *WritingHandler {
	return &WritingHandler{session: session}
}

type setTextRequest struct {
	Text string `json:"text"`
}

type submitResponse struct {
	Feedback entity.EssayFeedback `json:"feedback"`
	Session  writing.Snapshot     `json:"session"`
}

func (h *WritingHandler) Snapshot(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Snapshot())
}

func (h *WritingHandler) Start(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Start())
}

func (h *WritingHandler) Reset(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, h.session.Reset())
}

func (h *WritingHandler) SetText(w http.ResponseWriter, r *http.Request) {
	var req setTextRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	respondWithJSON(w, http.StatusOK, h.session.SetText(req.Text))
}

func (h *WritingHandler) Submit(w http.ResponseWriter, _ *http.Request) {
	review, err := h.session.Submit()
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, submitResponse{Feedback: review, Session: h.session.Snapshot()})
}
