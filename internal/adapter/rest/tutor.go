package rest

import (
	"net/http"

	"github.com/eslsoft/tutorpad/internal/adapter/mapping"
	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
)

// TutorHandler serves the chat transcript of the session.
type TutorHandler struct {
	conv        *feedback.Conversation
	suggestions []entity.Suggestion
}

func NewTutorHandler(conv *feedback.Conversation, suggestions []entity.Suggestion) *TutorHandler {
	return &TutorHandler{conv: conv, suggestions: suggestions}
}

func (h *TutorHandler) Level(w http.ResponseWriter, _ *http.Request) {
	level := h.conv.Level()
	suggestions := h.suggestions
	if suggestions == nil {
		suggestions = []entity.Suggestion{}
	}
	respondWithJSON(w, http.StatusOK, mapping.LevelResponse{
		Level:       level.Label,
		Description: level.Description,
		Suggestions: suggestions,
	})
}

func (h *TutorHandler) Messages(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]any{
		"messages": mapping.ToMessageResponses(h.conv.Messages()),
		"pending":  h.conv.Pending(),
	})
}

// Ask records the question and holds the request until the reply arrives.
func (h *TutorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req mapping.AskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	question, reply, err := h.conv.Send(r.Context(), req.Question)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	answer, err := reply.Wait(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, mapping.AskResponse{
		Question: mapping.ToMessageResponse(question),
		Reply:    mapping.ToMessageResponse(answer),
	})
}
