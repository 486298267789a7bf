package model

import "time"

type InquiryStatus string

const (
	StatusNew      InquiryStatus = "New"
	StatusReplied  InquiryStatus = "Replied"
	StatusArchived InquiryStatus = "Archived"
)

// Valid reports whether s is one of the three recognized statuses.
// Any transition between valid statuses is allowed, including Archived -> New:
// conversations can resume after archiving.
func (s InquiryStatus) Valid() bool {
	switch s {
	case StatusNew, StatusReplied, StatusArchived:
		return true
	}
	return false
}

const DefaultSubject = "No Subject"

type Inquiry struct {
	ID          string        `gorm:"primaryKey;size:24" json:"id"`
	ClientID    string        `gorm:"column:client_id;size:24;index" json:"clientId"`
	VendorID    string        `gorm:"column:vendor_id;size:24;index" json:"vendorId"`
	Subject     string        `gorm:"size:255;not null" json:"subject"`
	WeddingDate *time.Time    `gorm:"column:wedding_date" json:"weddingDate,omitempty"`
	Status      InquiryStatus `gorm:"size:16;not null" json:"status"`
	Messages    []Message     `gorm:"foreignKey:InquiryID;references:ID" json:"messages"`

	// Timestamps are set explicitly by the repository, never by GORM hooks:
	// updatedAt is part of each operation's contract and must stay monotonic.
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
