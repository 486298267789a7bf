package model

import "time"

// SenderRole states which side of the conversation authored a message.
// A thread binds exactly one client and one vendor, so the role is enough.
type SenderRole string

const (
	SenderClient SenderRole = "Client"
	SenderVendor SenderRole = "Vendor"
)

func (r SenderRole) Valid() bool {
	return r == SenderClient || r == SenderVendor
}

type Message struct {
	ID        string `gorm:"primaryKey;size:24" json:"id"`
	InquiryID string `gorm:"column:inquiry_id;size:24;index" json:"-"`
	// Seq is a table-wide auto-increment; inserts are atomic appends and
	// ordering by seq reproduces insertion order within a thread.
	Seq         uint64     `gorm:"column:seq;autoIncrement;uniqueIndex" json:"-"`
	Sender      SenderRole `gorm:"size:16;not null" json:"sender"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	ReplyTo     *string    `gorm:"column:reply_to;size:24" json:"replyTo,omitempty"`
	Attachments []string   `gorm:"serializer:json;type:json" json:"attachments,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"createdAt"`
}

func (Message) TableName() string {
	return "messages"
}
