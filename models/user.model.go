package models

import (
	"gorm.io/gorm"
)

// User is the root account record. Profile, OrganizationProfile and
// enrollment rows hang off it and are removed with it.
type User struct {
	gorm.Model
	Username    string `json:"username" gorm:"uniqueIndex;not null"`
	Email       string `json:"email" gorm:"uniqueIndex;not null"`
	Password    string `json:"-" gorm:"not null"`
	IsSuperuser bool   `json:"is_superuser" gorm:"default:false"`

	Profile             *Profile             `json:"profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	OrganizationProfile *OrganizationProfile `json:"organization_profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
