package models

import "gorm.io/gorm"

const (
	ProjectStatusActive    = "Active"
	ProjectStatusCompleted = "Completed"
	ProjectStatusOnHold    = "On Hold"
	ProjectStatusCancelled = "Cancelled"
)

// ProjectStatuses is the closed set accepted on create and patch.
var ProjectStatuses = []string{
	ProjectStatusActive,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
	ProjectStatusCancelled,
}

type Project struct {
	gorm.Model

	ProjectName        string `gorm:"not null"`
	ProjectStatus      string `gorm:"not null"`
	StartDate          string
	EndDate            string
	AccountID          uint `gorm:"not null;index"`
	ProjectValue       float64
	ProjectDescription string
	ProjectOwnerID     uint `gorm:"not null;index"`

	// Relationships
	Account      Account  `gorm:"foreignKey:AccountID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectOwner User     `gorm:"foreignKey:ProjectOwnerID"`
	Tasks        []Task   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Updates      []Update `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func ValidProjectStatus(status string) bool {
	for _, s := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}
