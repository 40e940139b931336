package models

import "gorm.io/gorm"

const (
	TaskStatusToDo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// TaskStatuses is the closed set accepted on create and patch.
var TaskStatuses = []string{
	TaskStatusToDo,
	TaskStatusInProgress,
	TaskStatusDone,
}

type Task struct {
	gorm.Model

	TaskName     string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null"`
	DueDate      string
	ProjectID    uint `gorm:"not null;index"`
	AssignedToID uint `gorm:"not null;index"`
	CreatedByID  uint `gorm:"not null;index"`

	// Relationships
	Project    Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	AssignedTo User     `gorm:"foreignKey:AssignedToID"`
	CreatedBy  User     `gorm:"foreignKey:CreatedByID"`
	Updates    []Update `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func ValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}
