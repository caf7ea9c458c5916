package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReferralCode returns a short unique referral code for a new
// profile.
func GenerateReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
