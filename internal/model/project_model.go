package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	// Time-derived snapshot id, assigned by the application.
	Id        string    `gorm:"type:varchar(32);primaryKey"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Markup    string    `gorm:"type:text"`
	Style     string    `gorm:"type:text"`
	Script    string    `gorm:"type:text"`
	Output    string    `gorm:"type:text"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Project) TableName() string {
	return "projects"
}
