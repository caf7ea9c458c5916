package course

import "gorm.io/gorm"

// Catalog enums. Values match what the frontend filters on.
var (
	Categories = []string{
		"Manual Testing",
		"Automation Testing",
		"API Testing",
		"Mobile Testing",
		"Python Development",
		"java Development",
		"UI/UX",
		"mern Stack",
	}
	Levels     = []string{"Beginner", "Intermediate", "Advance"}
	PriceTypes = []string{"Free", "Paid"}
)

// DefaultThumbnailURL is served when a course has no stored thumbnail.
const DefaultThumbnailURL = "/default-thumbnail.jpg"

// Course represents a catalog entry. Media fields hold object-store URLs,
// never raw bytes.
type Course struct {
	gorm.Model
	Title          string   `json:"title" gorm:"not null"`
	Category       string   `json:"category" gorm:"not null"`
	Level          string   `json:"level" gorm:"not null"`
	PriceType      string   `json:"price_type" gorm:"not null"`
	Price          float64  `json:"price"`
	OldPrice       *float64 `json:"old_price"`
	Students       int      `json:"students" gorm:"default:0"`
	Rating         float64  `json:"rating" gorm:"default:0"`
	Instructor     string   `json:"instructor"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url" gorm:"default:''"`
	ThumbnailURL   string   `json:"-" gorm:"default:''"`
	VideoFileURL   string   `json:"-" gorm:"default:''"`
	YoutubeURL     string   `json:"-" gorm:"default:''"`
	CreatedByID    *uint    `json:"created_by" gorm:"index"`
	OrganizationID *uint    `json:"organization" gorm:"index"`
}

// DisplayThumbnailURL resolves the stored thumbnail, falling back to the
// default placeholder.
func (c *Course) DisplayThumbnailURL() string {
	if c.ThumbnailURL != "" {
		return c.ThumbnailURL
	}
	return DefaultThumbnailURL
}

// DisplayVideoURL prefers the uploaded video file over an external URL.
// Empty string means the course has no video at all.
func (c *Course) DisplayVideoURL() string {
	if c.VideoFileURL != "" {
		return c.VideoFileURL
	}
	if c.YoutubeURL != "" {
		return c.YoutubeURL
	}
	return ""
}

// ValidCategory reports whether v is one of the catalog categories.
func ValidCategory(v string) bool { return contains(Categories, v) }

// ValidLevel reports whether v is one of the course levels.
func ValidLevel(v string) bool { return contains(Levels, v) }

// ValidPriceType reports whether v is Free or Paid.
func ValidPriceType(v string) bool { return contains(PriceTypes, v) }

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
