package batch

import (
	"time"

	"gorm.io/gorm"

	"lms/models"
	courseModels "lms/models/course"
)

// Batch is an organization-owned group of users. Membership is a set:
// adding a user twice leaves a single membership row.
type Batch struct {
	gorm.Model
	Name           string `json:"name" gorm:"not null"`
	OrganizationID uint   `json:"organization_id" gorm:"index;not null"`

	Users []models.User `json:"users,omitempty" gorm:"many2many:batch_users;constraint:OnDelete:CASCADE"`
}

// BatchCourse assigns a course to a batch. Unlike UserCourse, assigning
// the same pair again is a no-op success rather than a conflict.
type BatchCourse struct {
	gorm.Model
	BatchID    uint      `json:"batch_id" gorm:"uniqueIndex:idx_batch_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_batch_course;not null"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`

	Batch  Batch               `json:"-" gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
	Course courseModels.Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
