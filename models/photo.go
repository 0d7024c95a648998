package models

import (
	"time"

	"github.com/google/uuid"
)

// JobPhoto is a reference row pointing at a stored image. The binary lives
// in blob storage; a row must never exist without its object (the upload
// path stores the object first, then inserts the row).
type JobPhoto struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	JobID     uint64    `gorm:"index;not null"           json:"jobId"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"       json:"userId"`
	URL       string    `gorm:"not null"                 json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime"           json:"createdAt"`
}

func (JobPhoto) TableName() string {
	return "job_photos"
}
