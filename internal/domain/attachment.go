package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file stored in MinIO, linked to a ticket or legal case.
type Attachment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	EntityType  string    `json:"entity_type" db:"entity_type"`
	EntityID    uuid.UUID `json:"entity_id" db:"entity_id"`
	UploadedBy  uuid.UUID `json:"uploaded_by" db:"uploaded_by"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	MimeType    string    `json:"mime_type" db:"mime_type"`
	StoragePath string    `json:"-" db:"storage_path"`
	URL         string    `json:"url" db:"-"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type AttachmentEntity string

const (
	AttachTicket AttachmentEntity = "ticket"
	AttachCase   AttachmentEntity = "case"
)

func (e AttachmentEntity) IsValid() bool {
	return e == AttachTicket || e == AttachCase
}
