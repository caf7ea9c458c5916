package permissions

import (
	"gorm.io/gorm"

	"lms/models"
)

// LoadActor resolves the verified account id into an Actor for the gate.
// A missing Profile leaves Role empty, which the gate turns into a
// profile-missing deny.
func LoadActor(db *gorm.DB, userID uint) (Actor, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return Actor{}, err
	}

	actor := Actor{UserID: user.ID, IsSuperuser: user.IsSuperuser}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
		actor.Role = models.NormalizeRole(profile.Role)
	}

	if actor.Role == models.RoleOrganization {
		var org models.OrganizationProfile
		if err := db.Where("user_id = ?", user.ID).First(&org).Error; err == nil {
			orgID := org.ID
			actor.OrgID = &orgID
		}
	}

	return actor, nil
}
