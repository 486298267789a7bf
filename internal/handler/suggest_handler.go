package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/inquiry-backend/internal/ai"
	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/service"
)

type SuggestHandler struct {
	svc     service.InquiryService
	suggest *ai.SuggestClient
}

func NewSuggestHandler(svc service.InquiryService, suggest *ai.SuggestClient) *SuggestHandler {
	return &SuggestHandler{svc: svc, suggest: suggest}
}

type SuggestResponse struct {
	Suggestion string `json:"suggestion"`
}

// SuggestReply drafts a vendor reply from the thread transcript.
func (h *SuggestHandler) SuggestReply(c echo.Context) error {
	if h.suggest == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "reply suggestions are not configured"))
	}
	inquiryID := c.Param("inquiryId")
	if err := identifier.Validate(inquiryID); err != nil {
		return writeError(c, err)
	}
	inq, err := h.svc.Get(c.Request().Context(), inquiryID)
	if err != nil {
		return writeError(c, err)
	}

	turns := make([]ai.Turn, 0, len(inq.Messages))
	for _, m := range inq.Messages {
		turns = append(turns, ai.Turn{Role: string(m.Sender), Text: m.Content})
	}
	text, err := h.suggest.SuggestReply(c.Request().Context(), inq.Subject, turns)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "suggestion failed"))
	}
	return c.JSON(http.StatusOK, SuggestResponse{Suggestion: text})
}
