package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/planora/inquiry-backend/internal/identifier"
	"github.com/planora/inquiry-backend/internal/model"
	"github.com/planora/inquiry-backend/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidStatus = errors.New("invalid status")
)

type CreateInquiryInput struct {
	ClientID    string
	VendorID    string
	Subject     string
	WeddingDate *time.Time
	Sender      model.SenderRole
	Content     string
}

type AppendMessageInput struct {
	Sender      model.SenderRole
	Content     string
	ReplyTo     *string
	Attachments []string
}

// InquiryService owns the thread lifecycle: all writes go through Create,
// AppendMessage, and SetStatus, and each one stamps updatedAt explicitly.
type InquiryService interface {
	Create(ctx context.Context, in CreateInquiryInput) (*model.Inquiry, error)
	AppendMessage(ctx context.Context, inquiryID string, in AppendMessageInput) (*model.Inquiry, error)
	SetStatus(ctx context.Context, inquiryID string, status string) (*model.Inquiry, error)
	Get(ctx context.Context, inquiryID string) (*model.Inquiry, error)
	ListForUser(ctx context.Context, userID string) ([]model.Inquiry, error)
	ListMessages(ctx context.Context, inquiryID string) ([]model.Message, error)
}

type inquiryService struct {
	repo repository.InquiryRepository
	now  func() time.Time
}

func NewInquiryService(repo repository.InquiryRepository) InquiryService {
	return &inquiryService{repo: repo, now: time.Now}
}

// Create opens a thread with its first message in one write: a thread is
// never observable without at least one message. Status always starts at New,
// whichever role sent the opener.
func (s *inquiryService) Create(ctx context.Context, in CreateInquiryInput) (*model.Inquiry, error) {
	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: client", ErrMissingField)
	}
	if in.VendorID == "" {
		return nil, fmt.Errorf("%w: vendor", ErrMissingField)
	}
	if err := identifier.Validate(in.ClientID); err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	if err := identifier.Validate(in.VendorID); err != nil {
		return nil, fmt.Errorf("vendor: %w", err)
	}
	if !in.Sender.Valid() {
		return nil, fmt.Errorf("%w: sender", ErrMissingField)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: message", ErrMissingField)
	}
	subject := in.Subject
	if subject == "" {
		subject = model.DefaultSubject
	}
	now := s.now()
	inq := &model.Inquiry{
		ID:          identifier.New(),
		ClientID:    in.ClientID,
		VendorID:    in.VendorID,
		Subject:     subject,
		WeddingDate: in.WeddingDate,
		Status:      model.StatusNew,
		Messages: []model.Message{{
			ID:        identifier.New(),
			Sender:    in.Sender,
			Content:   in.Content,
			CreatedAt: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

// AppendMessage adds a message at the end of the thread. ReplyTo is carried
// as-is: the reference system never checked that it names a message in the
// thread, and that permissiveness is kept.
func (s *inquiryService) AppendMessage(ctx context.Context, inquiryID string, in AppendMessageInput) (*model.Inquiry, error) {
	if !in.Sender.Valid() {
		return nil, fmt.Errorf("%w: sender", ErrMissingField)
	}
	if in.Content == "" {
		return nil, fmt.Errorf("%w: content", ErrMissingField)
	}
	msg := &model.Message{
		ID:          identifier.New(),
		Sender:      in.Sender,
		Content:     in.Content,
		ReplyTo:     in.ReplyTo,
		Attachments: in.Attachments,
		CreatedAt:   s.now(),
	}
	inq, err := s.repo.AppendMessage(ctx, inquiryID, msg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inq, nil
}

// SetStatus applies any transition between the three recognized statuses.
// There is no terminal state: Archived -> New is deliberately allowed because
// real conversations resume after archiving.
func (s *inquiryService) SetStatus(ctx context.Context, inquiryID string, status string) (*model.Inquiry, error) {
	st := model.InquiryStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	inq, err := s.repo.UpdateStatus(ctx, inquiryID, st, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inq, nil
}

func (s *inquiryService) Get(ctx context.Context, inquiryID string) (*model.Inquiry, error) {
	inq, err := s.repo.FindByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inq, nil
}

func (s *inquiryService) ListForUser(ctx context.Context, userID string) ([]model.Inquiry, error) {
	if err := identifier.Validate(userID); err != nil {
		return nil, err
	}
	return s.repo.FindByParticipant(ctx, userID)
}

func (s *inquiryService) ListMessages(ctx context.Context, inquiryID string) ([]model.Message, error) {
	msgs, err := s.repo.ListMessages(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return msgs, nil
}
