package database

import "time"

// User represents an account that can authenticate against the API
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	IsActive     bool       `json:"isActive" gorm:"not null;default:true"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	UserRoles    []UserRole `json:"-" gorm:"foreignKey:UserID"`
}

// RoleNames returns the names of every role assigned to the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.UserRoles))
	for _, ur := range u.UserRoles {
		names = append(names, ur.Role.Name)
	}
	return names
}

// PermissionKeys returns the deduplicated union of permission keys reachable
// through the user's roles.
func (u *User) PermissionKeys() []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	for _, ur := range u.UserRoles {
		for _, rp := range ur.Role.RolePermissions {
			if _, ok := seen[rp.Permission.Key]; ok {
				continue
			}
			seen[rp.Permission.Key] = struct{}{}
			keys = append(keys, rp.Permission.Key)
		}
	}
	return keys
}

// Role groups a set of permissions
type Role struct {
	ID              uint             `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string           `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description     string           `json:"description"`
	RolePermissions []RolePermission `json:"-" gorm:"foreignKey:RoleID"`
}

// Permission is static reference data identifying a grantable capability
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Key         string `json:"key" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description"`
}

// UserRole assigns a role to a user
type UserRole struct {
	UserID uint `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	RoleID uint `json:"roleId" gorm:"primaryKey;autoIncrement:false"`
	Role   Role `json:"role" gorm:"foreignKey:RoleID"`
}

// RolePermission grants a permission to a role
type RolePermission struct {
	RoleID       uint       `json:"roleId" gorm:"primaryKey;autoIncrement:false"`
	PermissionID uint       `json:"permissionId" gorm:"primaryKey;autoIncrement:false"`
	Permission   Permission `json:"permission" gorm:"foreignKey:PermissionID"`
}

// Artist is an entry in the artist name registry
type Artist struct {
	ID              uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string    `json:"name" gorm:"type:varchar(255);not null;index"`
	CreatedByUserID uint      `json:"createdByUserId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ContributionType describes how an artist contributed to a product
type ContributionType struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `json:"description"`
}

// CoverArt is an uploaded cover image. MarkedForDeletionAt is the deletion
// mark: nil means not marked; a set timestamp means the record becomes
// eligible for physical deletion once the timestamp passes, provided it is
// still orphaned at sweep time.
type CoverArt struct {
	ID                  uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	ResourceURI         string     `json:"resourceUri" gorm:"not null"`
	ProviderKey         string     `json:"-" gorm:"not null"`
	MimeType            string     `json:"mimeType" gorm:"type:varchar(50);not null"`
	CreatedByUserID     uint       `json:"createdByUserId"`
	MarkedForDeletionAt *time.Time `json:"markedForDeletionAt,omitempty" gorm:"index"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// ProductStatus is the product lifecycle state. Deleted is terminal.
type ProductStatus string

const (
	ProductActive  ProductStatus = "active"
	ProductDeleted ProductStatus = "deleted"
)

// Product is a catalog release. A deleted product always has CoverArtID nil:
// the association is severed at delete time.
type Product struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name            string          `json:"name" gorm:"type:varchar(255);not null"`
	Status          ProductStatus   `json:"status" gorm:"type:varchar(20);not null;default:'active';index"`
	CoverArtID      *uint           `json:"coverArtId,omitempty"`
	CoverArt        *CoverArt       `json:"coverArt,omitempty" gorm:"foreignKey:CoverArtID"`
	CreatedByUserID uint            `json:"createdByUserId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	ProductArtists  []ProductArtist `json:"productArtists" gorm:"foreignKey:ProductID"`
}

// ProductArtist links a product to an artist, optionally with a
// contribution type.
type ProductArtist struct {
	ID                 uint              `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductID          uint              `json:"productId" gorm:"not null;index"`
	ArtistID           uint              `json:"artistId" gorm:"not null"`
	ContributionTypeID *uint             `json:"contributionTypeId,omitempty"`
	Artist             Artist            `json:"artist" gorm:"foreignKey:ArtistID"`
	ContributionType   *ContributionType `json:"contributionType,omitempty" gorm:"foreignKey:ContributionTypeID"`
}
