package database

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// store implements the Store interface over gorm
type store struct {
	db *gorm.DB
}

// Close closes the database connection
func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).
		Preload("UserRoles.Role.RolePermissions.Permission").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) GetUserByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).
		Preload("UserRoles.Role.RolePermissions.Permission").
		First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("last_login_at", at).Error
}

func (s *store) SetUserActive(ctx context.Context, userID uint, active bool) error {
	return s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("is_active", active).Error
}

func (s *store) SearchArtists(ctx context.Context, query string, limit int) ([]*Artist, error) {
	var artists []*Artist
	tx := s.db.WithContext(ctx).Model(&Artist{})
	if query != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%")
	}
	err := tx.Order("name asc").Limit(limit).Find(&artists).Error
	return artists, err
}

func (s *store) CreateArtist(ctx context.Context, artist *Artist) error {
	return s.db.WithContext(ctx).Create(artist).Error
}

func (s *store) ListContributionTypes(ctx context.Context) ([]*ContributionType, error) {
	var types []*ContributionType
	err := s.db.WithContext(ctx).Order("name asc").Find(&types).Error
	return types, err
}

func (s *store) CreateCoverArt(ctx context.Context, coverArt *CoverArt) error {
	return s.db.WithContext(ctx).Create(coverArt).Error
}

func (s *store) GetCoverArt(ctx context.Context, id uint) (*CoverArt, error) {
	var coverArt CoverArt
	if err := s.db.WithContext(ctx).First(&coverArt, id).Error; err != nil {
		return nil, err
	}
	return &coverArt, nil
}

func (s *store) CountActiveProductsForCoverArt(ctx context.Context, coverArtID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&Product{}).
		Where("cover_art_id = ? AND status = ?", coverArtID, ProductActive).
		Count(&count).Error
	return count, err
}

func (s *store) SetCoverArtDeletionMark(ctx context.Context, id uint, at *time.Time) error {
	return s.db.WithContext(ctx).
		Model(&CoverArt{}).
		Where("id = ?", id).
		Update("marked_for_deletion_at", at).Error
}

func (s *store) ListExpiredCoverArt(ctx context.Context, now time.Time) ([]*CoverArt, error) {
	var expired []*CoverArt
	err := s.db.WithContext(ctx).
		Where("marked_for_deletion_at IS NOT NULL AND marked_for_deletion_at <= ?", now).
		Find(&expired).Error
	return expired, err
}

func (s *store) DeleteCoverArt(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&CoverArt{}, id).Error
}

// productPreloads attaches the joined cover art and contributor associations.
func productPreloads(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("CoverArt").
		Preload("ProductArtists.Artist").
		Preload("ProductArtists.ContributionType")
}

func (s *store) ListProducts(ctx context.Context) ([]*Product, error) {
	var products []*Product
	err := productPreloads(s.db.WithContext(ctx)).
		Where("status = ?", ProductActive).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}

func (s *store) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	err := productPreloads(s.db.WithContext(ctx)).
		Where("id = ? AND status = ?", id, ProductActive).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *store) CreateProduct(ctx context.Context, product *Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

func (s *store) UpdateProduct(ctx context.Context, id uint, fields map[string]any, contributors *[]ProductArtist) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if contributors != nil {
			if err := tx.Where("product_id = ?", id).Delete(&ProductArtist{}).Error; err != nil {
				return err
			}
			for i := range *contributors {
				(*contributors)[i].ProductID = id
			}
			if len(*contributors) > 0 {
				if err := tx.Create(contributors).Error; err != nil {
					return err
				}
			}
		}
		if len(fields) > 0 {
			if err := tx.Model(&Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) SoftDeleteProduct(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       ProductDeleted,
			"cover_art_id": nil,
		}).Error
}
