package database

import (
	"context"

	"github.com/fuga-catalog/catalog/internal/common/cnst"
)

// defaultContributionTypes are created once at bootstrap.
var defaultContributionTypes = []ContributionType{
	{Name: "Primary Artist", Description: "Main performing artist on the track"},
	{Name: "Featured Artist", Description: "Guest artist with a significant contribution"},
	{Name: "Remixer", Description: "Artist who created a remix of the track"},
	{Name: "Composer", Description: "Creator of the musical composition and melody"},
	{Name: "Producer", Description: "Oversees the recording and sound of the track"},
	{Name: "Mastering Engineer", Description: "Finalizes the audio for distribution"},
}

// EnsureSeedData idempotently creates the super admin account, the Admin role
// with every permission granted, and the default contribution types.
func (s *store) EnsureSeedData(ctx context.Context, adminEmail, adminPasswordHash string) error {
	db := s.db.WithContext(ctx)

	admin := User{Email: adminEmail, PasswordHash: adminPasswordHash, IsActive: true}
	if err := db.Where(&User{Email: adminEmail}).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	adminRole := Role{Name: "Admin", Description: "Full system access"}
	if err := db.Where(&Role{Name: "Admin"}).FirstOrCreate(&adminRole).Error; err != nil {
		return err
	}

	if err := db.Where(&UserRole{UserID: admin.ID, RoleID: adminRole.ID}).
		FirstOrCreate(&UserRole{UserID: admin.ID, RoleID: adminRole.ID}).Error; err != nil {
		return err
	}

	for _, key := range cnst.AllPermissions {
		perm := Permission{Key: string(key), Description: cnst.PermissionDescriptions[key]}
		if err := db.Where(&Permission{Key: string(key)}).FirstOrCreate(&perm).Error; err != nil {
			return err
		}
		grant := RolePermission{RoleID: adminRole.ID, PermissionID: perm.ID}
		if err := db.Where(&RolePermission{RoleID: adminRole.ID, PermissionID: perm.ID}).
			FirstOrCreate(&grant).Error; err != nil {
			return err
		}
	}

	for _, ct := range defaultContributionTypes {
		record := ct
		if err := db.Where(&ContributionType{Name: ct.Name}).FirstOrCreate(&record).Error; err != nil {
			return err
		}
	}

	return nil
}
