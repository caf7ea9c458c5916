package course

import (
	"time"

	"gorm.io/gorm"
)

// UserCourse links a user to a course they were assigned. The composite
// unique index is the authoritative duplicate guard; a second assignment
// of the same pair must surface as a conflict.
type UserCourse struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID   uint      `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`

	Course Course `json:"course" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// DisplayCourse is the public projection returned to enrolled students.
// Internal fields (ownership, raw media columns) stay out of it.
type DisplayCourse struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	ThumbnailURL string  `json:"thumbnail_url"`
	VideoURL     *string `json:"video_url"`
	Price        float64 `json:"price"`
	Level        string  `json:"level"`
	Instructor   string  `json:"instructor"`
}

// Display reduces a Course to its public projection. A course with no
// video yields a null video_url.
func (c *Course) Display() DisplayCourse {
	d := DisplayCourse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ThumbnailURL: c.DisplayThumbnailURL(),
		Price:        c.Price,
		Level:        c.Level,
		Instructor:   c.Instructor,
	}
	if v := c.DisplayVideoURL(); v != "" {
		d.VideoURL = &v
	}
	return d
}
