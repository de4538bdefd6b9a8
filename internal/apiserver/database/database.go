package database

import (
	"context"
	"time"
)

// Store defines the persistence operations used by the catalog services.
type Store interface {
	// Close closes the database connection.
	Close() error

	// GetUserByEmail gets a user by email with roles and permissions preloaded.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID gets a user by id with roles and permissions preloaded.
	GetUserByID(ctx context.Context, id uint) (*User, error)

	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error

	// SetUserActive enables or disables an account.
	SetUserActive(ctx context.Context, userID uint, active bool) error

	// SearchArtists returns artists whose name contains query
	// (case-insensitive), ordered by name ascending, capped at limit.
	// An empty query matches all artists.
	SearchArtists(ctx context.Context, query string, limit int) ([]*Artist, error)

	// CreateArtist persists a new artist.
	CreateArtist(ctx context.Context, artist *Artist) error

	// ListContributionTypes returns all contribution types ordered by name.
	ListContributionTypes(ctx context.Context) ([]*ContributionType, error)

	// CreateCoverArt persists a new cover art record.
	CreateCoverArt(ctx context.Context, coverArt *CoverArt) error

	// GetCoverArt gets a cover art record by id.
	GetCoverArt(ctx context.Context, id uint) (*CoverArt, error)

	// CountActiveProductsForCoverArt counts active products referencing the
	// given cover art.
	CountActiveProductsForCoverArt(ctx context.Context, coverArtID uint) (int64, error)

	// SetCoverArtDeletionMark sets or clears (nil) the deletion mark.
	SetCoverArtDeletionMark(ctx context.Context, id uint, at *time.Time) error

	// ListExpiredCoverArt returns cover art whose deletion mark is at or
	// before now.
	ListExpiredCoverArt(ctx context.Context, now time.Time) ([]*CoverArt, error)

	// DeleteCoverArt removes a cover art record.
	DeleteCoverArt(ctx context.Context, id uint) error

	// ListProducts returns all active products with cover art and
	// contributors preloaded, newest first.
	ListProducts(ctx context.Context) ([]*Product, error)

	// GetProduct returns an active product by id with cover art and
	// contributors preloaded. Returns gorm.ErrRecordNotFound if absent.
	GetProduct(ctx context.Context, id uint) (*Product, error)

	// CreateProduct persists a product together with its contributor rows.
	CreateProduct(ctx context.Context, product *Product) error

	// UpdateProduct applies partial field updates and, when contributors is
	// non-nil, replaces the full contributor set, in a single transaction.
	UpdateProduct(ctx context.Context, id uint, fields map[string]any, contributors *[]ProductArtist) error

	// SoftDeleteProduct marks the product deleted and severs its cover art
	// reference in one update.
	SoftDeleteProduct(ctx context.Context, id uint) error

	// EnsureSeedData idempotently creates the super admin account, the Admin
	// role, all permissions with their grants, and the default contribution
	// types.
	EnsureSeedData(ctx context.Context, adminEmail, adminPasswordHash string) error
}
