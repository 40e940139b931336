package models

import "gorm.io/gorm"

// Update is a timestamped note on a project, optionally pinned to a task.
// ProjectName, UpdateOwnerName and UpdateAccount are snapshots taken at
// insert time so listings never need the three-way join; they are allowed
// to go stale when the parent rows are renamed.
type Update struct {
	gorm.Model

	Notes         string `gorm:"not null"`
	Date          string
	UpdateType    string
	ProjectID     uint  `gorm:"not null;index"`
	TaskID        *uint `gorm:"index"`
	UpdateOwnerID uint  `gorm:"not null;index"`

	// Denormalized snapshots
	ProjectName     string
	UpdateOwnerName string
	UpdateAccount   string

	// Relationships
	Project     Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Task        *Task   `gorm:"foreignKey:TaskID"`
	UpdateOwner User    `gorm:"foreignKey:UpdateOwnerID"`
}
