package models

import "gorm.io/gorm"

const (
	UserTypeAdmin   = "admin"
	UserTypeRegular = "user"
)

type User struct {
	gorm.Model

	SecretKey string `gorm:"uniqueIndex;not null"` // opaque external credential, never rewritten
	UserName  string `gorm:"not null"`
	UserType  string `gorm:"not null"` // "admin" or "user"

	// Relationships
	OwnedAccounts []Account `gorm:"foreignKey:AccountOwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	OwnedProjects []Project `gorm:"foreignKey:ProjectOwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	TasksAssigned []Task    `gorm:"foreignKey:AssignedToID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	TasksCreated  []Task    `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Updates       []Update  `gorm:"foreignKey:UpdateOwnerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
