package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/planora/inquiry-backend/internal/model"
	"gorm.io/gorm"
)

// memoryInquiryRepository keeps threads in process memory. It satisfies the
// same contract as the GORM implementation (including gorm.ErrRecordNotFound
// for missing threads) so tests and DB-less development can substitute it.
// A single mutex serializes mutations, which rules out lost appends.
type memoryInquiryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.Inquiry
	nextSeq uint64
}

func NewMemoryInquiryRepository() InquiryRepository {
	return &memoryInquiryRepository{byID: make(map[string]*model.Inquiry)}
}

func (r *memoryInquiryRepository) SetDB(_ *gorm.DB) {}

func cloneInquiry(inq *model.Inquiry) *model.Inquiry {
	cp := *inq
	cp.Messages = cloneMessages(inq.Messages)
	return &cp
}

func cloneMessages(msgs []model.Message) []model.Message {
	out := make([]model.Message, len(msgs))
	for i, m := range msgs {
		out[i] = m
		out[i].Attachments = append([]string(nil), m.Attachments...)
	}
	return out
}

func (r *memoryInquiryRepository) Create(_ context.Context, inq *model.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneInquiry(inq)
	for i := range stored.Messages {
		r.nextSeq++
		stored.Messages[i].Seq = r.nextSeq
		stored.Messages[i].InquiryID = stored.ID
	}
	r.byID[stored.ID] = stored
	return nil
}

func (r *memoryInquiryRepository) FindByID(_ context.Context, id string) (*model.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inq, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneInquiry(inq), nil
}

func (r *memoryInquiryRepository) FindByParticipant(_ context.Context, userID string) ([]model.Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]model.Inquiry, 0)
	for _, inq := range r.byID {
		if inq.ClientID == userID || inq.VendorID == userID {
			list = append(list, *cloneInquiry(inq))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].UpdatedAt.After(list[j].UpdatedAt)
	})
	return list, nil
}

func (r *memoryInquiryRepository) AppendMessage(_ context.Context, inquiryID string, msg *model.Message) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.byID[inquiryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.nextSeq++
	stored := *msg
	stored.Seq = r.nextSeq
	stored.InquiryID = inquiryID
	stored.Attachments = append([]string(nil), msg.Attachments...)
	inq.Messages = append(inq.Messages, stored)
	if msg.CreatedAt.After(inq.UpdatedAt) {
		inq.UpdatedAt = msg.CreatedAt
	}
	return cloneInquiry(inq), nil
}

func (r *memoryInquiryRepository) UpdateStatus(_ context.Context, inquiryID string, status model.InquiryStatus, at time.Time) (*model.Inquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inq, ok := r.byID[inquiryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	inq.Status = status
	if at.After(inq.UpdatedAt) {
		inq.UpdatedAt = at
	}
	return cloneInquiry(inq), nil
}

func (r *memoryInquiryRepository) ListMessages(_ context.Context, inquiryID string) ([]model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inq, ok := r.byID[inquiryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneMessages(inq.Messages), nil
}
