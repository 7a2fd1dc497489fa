package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentView is a comment on an article together with its author profile
// as seen by the viewer.
type CommentView struct {
	ID        uuid.UUID
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    Profile
}
