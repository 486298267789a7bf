package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/model"
	"github.com/planora/inquiry-backend/internal/profile"
	"github.com/planora/inquiry-backend/internal/service"
)

type InquiryHandler struct {
	svc      service.InquiryService
	profiles profile.Resolver
}

func NewInquiryHandler(svc service.InquiryService, profiles profile.Resolver) *InquiryHandler {
	return &InquiryHandler{svc: svc, profiles: profiles}
}

type CreateInquiryRequest struct {
	Client      string `json:"client"`
	Vendor      string `json:"vendor"`
	Subject     string `json:"subject"`
	WeddingDate string `json:"weddingDate"`
	Message     string `json:"message"`
	Sender      string `json:"sender"`
}

type AppendMessageRequest struct {
	Sender      string   `json:"sender"`
	Content     string   `json:"content"`
	ReplyTo     *string  `json:"replyTo"`
	Attachments []string `json:"attachments"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type InquiryResponse struct {
	ID          string          `json:"id"`
	Client      ProfileResponse `json:"client"`
	Vendor      ProfileResponse `json:"vendor"`
	Subject     string          `json:"subject"`
	WeddingDate *string         `json:"weddingDate,omitempty"`
	Status      string          `json:"status"`
	Messages    []model.Message `json:"messages"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (h *InquiryHandler) toResponse(c echo.Context, inq *model.Inquiry) InquiryResponse {
	ctx := c.Request().Context()
	client, _ := h.profiles.Resolve(ctx, inq.ClientID)
	vendor, _ := h.profiles.Resolve(ctx, inq.VendorID)

	var wedding *string
	if inq.WeddingDate != nil {
		s := inq.WeddingDate.Format("2006-01-02")
		wedding = &s
	}
	msgs := inq.Messages
	if msgs == nil {
		msgs = []model.Message{}
	}
	return InquiryResponse{
		ID:          inq.ID,
		Client:      ProfileResponse{ID: client.ID, Name: client.Name, Email: client.Email},
		Vendor:      ProfileResponse{ID: vendor.ID, Name: vendor.Name, Email: vendor.Email},
		Subject:     inq.Subject,
		WeddingDate: wedding,
		Status:      string(inq.Status),
		Messages:    msgs,
		CreatedAt:   inq.CreatedAt,
		UpdatedAt:   inq.UpdatedAt,
	}
}

func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, identifier.ErrInvalid):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_id", err.Error()))
	case errors.Is(err, service.ErrMissingField):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("missing_field", err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_status", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "inquiry not found"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "unexpected failure"))
	}
}

// List returns every thread where the user is client or vendor, most
// recently active first.
func (h *InquiryHandler) List(c echo.Context) error {
	userID := c.Param("userId")
	inqs, err := h.svc.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	resp := make([]InquiryResponse, 0, len(inqs))
	for i := range inqs {
		resp = append(resp, h.toResponse(c, &inqs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *InquiryHandler) Create(c echo.Context) error {
	var req CreateInquiryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	weddingDate, err := parseWeddingDate(req.WeddingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid weddingDate"))
	}
	inq, err := h.svc.Create(c.Request().Context(), service.CreateInquiryInput{
		ClientID:    req.Client,
		VendorID:    req.Vendor,
		Subject:     req.Subject,
		WeddingDate: weddingDate,
		Sender:      model.SenderRole(req.Sender),
		Content:     req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, h.toResponse(c, inq))
}

func (h *InquiryHandler) AppendMessage(c echo.Context) error {
	inquiryID := c.Param("inquiryId")
	if err := identifier.Validate(inquiryID); err != nil {
		return writeError(c, err)
	}
	var req AppendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	inq, err := h.svc.AppendMessage(c.Request().Context(), inquiryID, service.AppendMessageInput{
		Sender:      model.SenderRole(req.Sender),
		Content:     req.Content,
		ReplyTo:     req.ReplyTo,
		Attachments: req.Attachments,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.toResponse(c, inq))
}

// ListMessages returns the thread's messages oldest first.
func (h *InquiryHandler) ListMessages(c echo.Context) error {
	inquiryID := c.Param("inquiryId")
	if err := identifier.Validate(inquiryID); err != nil {
		return writeError(c, err)
	}
	msgs, err := h.svc.ListMessages(c.Request().Context(), inquiryID)
	if err != nil {
		return writeError(c, err)
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	inquiryID := c.Param("inquiryId")
	if err := identifier.Validate(inquiryID); err != nil {
		return writeError(c, err)
	}
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	inq, err := h.svc.SetStatus(c.Request().Context(), inquiryID, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, h.toResponse(c, inq))
}

func parseWeddingDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
