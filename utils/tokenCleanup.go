package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lms/models"
)

// StartTokenCleanup schedules an hourly purge of revoked refresh tokens
// that have expired anyway. Rows past their exp are dead weight; removing
// them keeps the blacklist lookup small.
func StartTokenCleanup(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() {
		res := db.Where("expires_at < ?", time.Now()).Delete(&models.RevokedToken{})
		if res.Error != nil {
			log.Printf("Error purging expired revoked tokens: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("Purged %d expired revoked tokens", res.RowsAffected)
		}
	}); err != nil {
		log.Printf("Error scheduling token cleanup: %v", err)
	}

	c.Start()
	return c
}
