package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveProjectRequest carries the current buffer contents; the service
// composes the output itself so the stored snapshot always reflects the
// sources it was saved with.
type SaveProjectRequest struct {
	Title  string `json:"title"`
	Markup string `json:"html"`
	Style  string `json:"css"`
	Script string `json:"js"`
}

type SaveProjectResponse struct {
	Id      string    `json:"id"`
	SavedAt time.Time `json:"saved_at"`
}

type ProjectResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Markup    string    `json:"html"`
	Style     string    `json:"css"`
	Script    string    `json:"js"`
	Output    string    `json:"output"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
