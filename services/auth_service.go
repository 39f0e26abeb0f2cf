package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/utils"
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer Mailer
	log    zerolog.Logger
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer Mailer, log zerolog.Logger) *AuthService {
	return &AuthService{db: db, cfg: cfg, mailer: mailer, log: log}
}

// AuthUser is the user slice embedded in auth responses.
type AuthUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName *string   `json:"full_name"`
}

// AuthResult is the token pair handed out by login, register and refresh.
type AuthResult struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         AuthUser `json:"user"`
	ExpiresIn    int64    `json:"expiresIn"`
}

// Login authenticates a user. Unknown email and wrong password fail with
// the same error so the response leaks nothing about which was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, &user)
}

// Register creates the account plus its empty profile row and logs the new
// user straight in.
func (s *AuthService) Register(ctx context.Context, email, password string, fullName *string) (*AuthResult, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, PasswordHash: hash, FullName: fullName}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&models.UserProfile{ID: user.ID}).Error; err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create profile for new user")
	}

	return s.issueTokens(ctx, &user)
}

// Refresh exchanges a valid refresh token for a new pair, rotating the
// stored token in place. The old token is unusable immediately afterwards.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := utils.ParseToken(s.cfg.JWTRefreshSecret, refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var stored models.RefreshToken
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, refreshToken).
		First(&stored).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// A row past its recorded expiry is removed on the verification attempt
	// that discovers it, even when the signature would still validate.
	if stored.ExpiresAt.Before(time.Now()) {
		if err := s.db.WithContext(ctx).Delete(&stored).Error; err != nil {
			s.log.Error().Err(err).Msg("failed to delete expired refresh token")
		}
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	accessToken, err := utils.GenerateToken(s.cfg.JWTSecret, s.cfg.AccessTokenTTL, user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := utils.GenerateToken(s.cfg.JWTRefreshSecret, s.cfg.RefreshTokenTTL, user.ID, "")
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(&stored).Updates(map[string]interface{}{
		"token":      newRefreshToken,
		"expires_at": time.Now().Add(s.cfg.RefreshTokenTTL),
	}).Error
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         AuthUser{ID: user.ID, Email: user.Email, FullName: user.FullName},
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// Logout revokes the refresh token by deleting its row. Logging out an
// already-revoked token is not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.db.WithContext(ctx).
		Where("token = ?", refreshToken).
		Delete(&models.RefreshToken{}).Error
}

// ForgotPassword mints and stores a single-use reset token and mails it to
// the user. It returns the token so non-production responses can expose it;
// an unknown email returns an empty token and no error, keeping the outward
// response identical.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}

	resetToken, err := utils.GenerateResetToken(s.cfg.JWTSecret, s.cfg.ResetTokenTTL, user.ID)
	if err != nil {
		return "", err
	}

	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(&reset).Error; err != nil {
		return "", err
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, resetToken); err != nil {
		s.log.Error().Err(err).Str("email", user.Email).Msg("failed to send password reset email")
	}

	return resetToken, nil
}

// ResetPassword sets a new password from a reset token, consumes the token
// and revokes every refresh token the user holds, forcing re-login on all
// devices.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := utils.ParseToken(s.cfg.JWTSecret, token)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.Purpose != utils.TokenPurposeReset {
		return ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ErrInvalidToken
	}

	var reset models.PasswordReset
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if reset.ExpiresAt.Before(time.Now()) {
		if err := s.db.WithContext(ctx).Delete(&reset).Error; err != nil {
			s.log.Error().Err(err).Msg("failed to delete expired reset token")
		}
		return ErrInvalidToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		if err := tx.Delete(&reset).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
	})
}

// issueTokens mints an access/refresh pair and persists the refresh token.
// A failed persist is logged and the pair is still returned; such a token
// cannot be refreshed later.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, err := utils.GenerateToken(s.cfg.JWTSecret, s.cfg.AccessTokenTTL, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateToken(s.cfg.JWTRefreshSecret, s.cfg.RefreshTokenTTL, user.ID, "")
	if err != nil {
		return nil, err
	}

	stored := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(&stored).Error; err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to persist refresh token")
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         AuthUser{ID: user.ID, Email: user.Email, FullName: user.FullName},
		ExpiresIn:    int64(s.cfg.AccessTokenTTL.Seconds()),
	}, nil
}
