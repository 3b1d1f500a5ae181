package mapping

import (
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/tutorpad/internal/entity"
	"github.com/eslsoft/tutorpad/internal/usecase/feedback"
)

// MessageResponse carries both the raw content and its HTML rendering.
type MessageResponse struct {
	ID        int       `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
	Timestamp time.Time `json:"timestamp"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Question MessageResponse `json:"question"`
	Reply    MessageResponse `json:"reply"`
}

type LevelResponse struct {
	Level       string              `json:"level"`
	Description string              `json:"description"`
	Suggestions []entity.Suggestion `json:"suggestions"`
}

func ToMessageResponse(m entity.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Content:   m.Content,
		HTML:      feedback.RenderHTML(m.Content),
		Timestamp: m.CreatedAt,
	}
}

func ToMessageResponses(msgs []entity.Message) []MessageResponse {
	return lo.Map(msgs, func(m entity.Message, _ int) MessageResponse { return ToMessageResponse(m) })
}
