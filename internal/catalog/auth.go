package catalog

import (
	"context"
	"time"

	"github.com/fuga-catalog/catalog/internal/apiserver/database"
	"github.com/fuga-catalog/catalog/internal/auth/jwt"
	"github.com/fuga-catalog/catalog/internal/common/dto"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService validates credentials and issues signed tokens.
type AuthService struct {
	store      database.Store
	jwtService *jwt.Service
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(store database.Store, jwtService *jwt.Service, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      store,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed token together with the
// user's roles and deduplicated permission set. Every failure mode reports
// the same invalid-credentials error so that unknown emails are not
// distinguishable from wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errorx.NewInvalidCredentials()
	}
	if !user.IsActive {
		return nil, errorx.NewInvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorx.NewInvalidCredentials()
	}

	roles := user.RoleNames()
	permissions := user.PermissionKeys()

	token, err := s.jwtService.GenerateToken(user.ID, roles, permissions)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Uint("user_id", user.ID))

	return &dto.LoginResponse{
		Token: token,
		User: dto.UserInfo{
			ID:          user.ID,
			Email:       user.Email,
			Roles:       roles,
			Permissions: permissions,
		},
	}, nil
}

// CurrentUser returns the identity of an authenticated user. A missing or
// inactive user is reported as unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*dto.UserInfo, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errorx.NewUnauthorized("Not authenticated")
	}
	if !user.IsActive {
		return nil, errorx.NewUnauthorized("Not authenticated")
	}

	return &dto.UserInfo{
		ID:          user.ID,
		Email:       user.Email,
		Roles:       user.RoleNames(),
		Permissions: user.PermissionKeys(),
	}, nil
}
