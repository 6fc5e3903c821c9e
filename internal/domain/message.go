package domain

import (
	"time"

	"github.com/google/uuid"
)

type Thread struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	Title              *string    `json:"title,omitempty" db:"title"`
	CreatedBy          uuid.UUID  `json:"created_by" db:"created_by"`
	LastMessageAt      *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
	LastMessagePreview *string    `json:"last_message_preview,omitempty" db:"last_message_preview"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

type ThreadMember struct {
	ThreadID   uuid.UUID  `json:"thread_id" db:"thread_id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	FullName   string     `json:"full_name" db:"full_name"`
	LastReadAt *time.Time `json:"last_read_at,omitempty" db:"last_read_at"`
	JoinedAt   time.Time  `json:"joined_at" db:"joined_at"`
}

// ThreadOverview is what the feed and the inbox list consume: the thread
// plus its member rows, joined in one query.
type ThreadOverview struct {
	Thread
	Members []ThreadMember `json:"members"`
}

type Message struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ThreadID  uuid.UUID `json:"thread_id" db:"thread_id"`
	SenderID  uuid.UUID `json:"sender_id" db:"sender_id"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateThreadInput struct {
	Title     *string     `json:"title,omitempty"`
	MemberIDs []uuid.UUID `json:"member_ids" validate:"required,min=1"`
	Body      string      `json:"body" validate:"required"`
}

type SendMessageInput struct {
	Body string `json:"body" validate:"required"`
}
