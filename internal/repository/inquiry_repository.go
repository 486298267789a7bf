package repository

import (
	"context"
	"errors"
	"time"

	"github.com/planora/inquiry-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

// InquiryRepository is the single mutation path for inquiry threads.
// Messages are append-only: nothing here removes or reorders them.
type InquiryRepository interface {
	Create(ctx context.Context, inq *model.Inquiry) error
	FindByID(ctx context.Context, id string) (*model.Inquiry, error)
	FindByParticipant(ctx context.Context, userID string) ([]model.Inquiry, error)
	AppendMessage(ctx context.Context, inquiryID string, msg *model.Message) (*model.Inquiry, error)
	UpdateStatus(ctx context.Context, inquiryID string, status model.InquiryStatus, at time.Time) (*model.Inquiry, error)
	ListMessages(ctx context.Context, inquiryID string) ([]model.Message, error)
	SetDB(db *gorm.DB)
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) SetDB(db *gorm.DB) {
	r.db = db
}

func withMessages(db *gorm.DB) *gorm.DB {
	return db.Preload("Messages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("messages.seq ASC")
	})
}

func (r *inquiryRepository) Create(ctx context.Context, inq *model.Inquiry) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(inq).Error
}

func (r *inquiryRepository) FindByID(ctx context.Context, id string) (*model.Inquiry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var inq model.Inquiry
	if err := withMessages(r.db.WithContext(ctx)).
		First(&inq, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

func (r *inquiryRepository) FindByParticipant(ctx context.Context, userID string) ([]model.Inquiry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Inquiry
	if err := withMessages(r.db.WithContext(ctx)).
		Where("client_id = ? OR vendor_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AppendMessage inserts msg and bumps the thread's updated_at in one
// transaction. The insert is an atomic push (seq is assigned by the database),
// so two concurrent appends can never overwrite each other; GREATEST keeps
// updated_at monotonic when appends race.
func (r *inquiryRepository) AppendMessage(ctx context.Context, inquiryID string, msg *model.Message) (*model.Inquiry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inq model.Inquiry
		if err := tx.First(&inq, "id = ?", inquiryID).Error; err != nil {
			return err
		}
		msg.InquiryID = inquiryID
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&model.Inquiry{}).
			Where("id = ?", inquiryID).
			UpdateColumn("updated_at", gorm.Expr("GREATEST(updated_at, ?)", msg.CreatedAt)).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, inquiryID)
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, inquiryID string, status model.InquiryStatus, at time.Time) (*model.Inquiry, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inq model.Inquiry
		if err := tx.First(&inq, "id = ?", inquiryID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Inquiry{}).
			Where("id = ?", inquiryID).
			UpdateColumns(map[string]interface{}{
				"status":     status,
				"updated_at": gorm.Expr("GREATEST(updated_at, ?)", at),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, inquiryID)
}

func (r *inquiryRepository) ListMessages(ctx context.Context, inquiryID string) ([]model.Message, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var inq model.Inquiry
	if err := r.db.WithContext(ctx).
		Select("id").
		First(&inq, "id = ?", inquiryID).Error; err != nil {
		return nil, err
	}
	var msgs []model.Message
	if err := r.db.WithContext(ctx).
		Where("inquiry_id = ?", inquiryID).
		Order("seq ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
