package models

import "gorm.io/gorm"

type Account struct {
	gorm.Model

	AccountName        string `gorm:"not null"`
	AccountType        string
	AccountDescription string
	AccountOwnerID     uint `gorm:"not null;index"`

	// Relationships
	AccountOwner User      `gorm:"foreignKey:AccountOwnerID"`
	Projects     []Project `gorm:"foreignKey:AccountID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
