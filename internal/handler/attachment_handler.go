package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/service"
	"github.com/planora/inquiry-backend/internal/storage"
)

type AttachmentHandler struct {
	svc   service.InquiryService
	store *storage.AttachmentStore
}

func NewAttachmentHandler(svc service.InquiryService, store *storage.AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{svc: svc, store: store}
}

type AttachmentResponse struct {
	Attachment string `json:"attachment"`
}

// Upload stores a file and returns the opaque reference to pass in a later
// message's attachments array.
func (h *AttachmentHandler) Upload(c echo.Context) error {
	if h.store == nil {
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("unavailable", "attachment storage is not configured"))
	}
	inquiryID := c.Param("inquiryId")
	if err := identifier.Validate(inquiryID); err != nil {
		return writeError(c, err)
	}
	if _, err := h.svc.Get(c.Request().Context(), inquiryID); err != nil {
		return writeError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "cannot read file"))
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	ref, err := h.store.Upload(c.Request().Context(), inquiryID, fh.Filename, contentType, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "upload failed"))
	}
	return c.JSON(http.StatusCreated, AttachmentResponse{Attachment: ref})
}
