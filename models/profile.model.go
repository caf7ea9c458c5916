package models

import (
	"strings"

	"gorm.io/gorm"
)

// Roles stored on Profile. Comparisons always go through NormalizeRole.
const (
	RoleStudent      = "student"
	RoleOrganization = "organization"
	RoleAdmin        = "admin"
)

// NormalizeRole lowercases a role value for storage and comparison.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Profile carries role and contact metadata for a User.
type Profile struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Role         string `json:"role" gorm:"default:'student'"`
	Phone        string `json:"phone" gorm:"default:''"`
	ReferralCode string `json:"referral_code" gorm:"default:''"`
	CreatedByID  *uint  `json:"created_by"` // account that provisioned this user, if any
}

// OrganizationProfile exists only for accounts whose Profile role is organization.
type OrganizationProfile struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Name   string `json:"name" gorm:"not null"`
}
