package entity

import (
	"time"

	"github.com/google/uuid"
)

// Project is one immutable saved snapshot of an editor session: the
// three sources, their composite output, and the owner. A later save of
// the same session creates a new snapshot with a new id; rows are never
// updated in place.
type Project struct {
	// Id is derived from a monotonic millisecond clock at save time.
	Id        string
	Title     string
	Markup    string
	Style     string
	Script    string
	Output    string
	UserId    uuid.UUID
	CreatedAt time.Time
}
