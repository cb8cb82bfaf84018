package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kperez42/Celestia-sub000/internal/config"
	"github.com/kperez42/Celestia-sub000/internal/dto"
	"github.com/kperez42/Celestia-sub000/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
)

type AuthService struct {
	db        *gorm.DB
	cfg       *config.Config
	appleJWKS *AppleJWKSClient
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:        db,
		cfg:       cfg,
		appleJWKS: NewAppleJWKSClient(),
	}
}

// Register creates the account in pending review; it becomes visible in
// discovery only after an admin approves the profile.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.Account
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		ID:            uuid.New(),
		Email:         req.Email,
		Password:      string(hash),
		Name:          req.Name,
		AuthProvider:  "email",
		ProfileStatus: models.ProfileStatusPending,
	}
	if err := s.db.Create(&account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return s.generateTokenPair(&account)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var account models.Account
	if err := s.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&account)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	// Rotate: the presented refresh token is single-use.
	s.db.Model(&stored).Update("revoked", true)

	var account models.Account
	if err := s.db.First(&account, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("account not found: %w", err)
	}

	return s.generateTokenPair(&account)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

// DeleteAccount removes the account and everything keyed to it. Reports the
// user filed go too; reports filed against them stay for the safety record.
func (s *AuthService) DeleteAccount(userID uuid.UUID, password string) error {
	var account models.Account
	if err := s.db.First(&account, "id = ?", userID).Error; err != nil {
		return ErrAccountNotFound
	}

	if account.AuthProvider != "apple" {
		if password == "" {
			return errors.New("password is required")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete refresh tokens: %w", err)
		}
		if err := tx.Where("reporter_id = ?", userID).Delete(&models.Report{}).Error; err != nil {
			return fmt.Errorf("failed to delete filed reports: %w", err)
		}
		if err := tx.Where("blocker_id = ? OR blocked_id = ?", userID, userID).Delete(&models.Block{}).Error; err != nil {
			return fmt.Errorf("failed to delete blocks: %w", err)
		}
		if err := tx.Where("account_id = ?", userID).Delete(&models.ModerationQueueEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete queue entries: %w", err)
		}
		if err := tx.Where("account_id = ?", userID).Delete(&models.Warning{}).Error; err != nil {
			return fmt.Errorf("failed to delete warnings: %w", err)
		}
		if err := tx.Where("account_id = ?", userID).Delete(&models.Verification{}).Error; err != nil {
			return fmt.Errorf("failed to delete verifications: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Appeal{}).Error; err != nil {
			return fmt.Errorf("failed to delete appeals: %w", err)
		}
		return tx.Delete(&account).Error
	})
}

func (s *AuthService) AppleSignIn(req *dto.AppleSignInRequest) (*dto.AuthResponse, error) {
	if req.IdentityToken == "" {
		return nil, errors.New("identity token is required")
	}

	claims, err := s.appleJWKS.VerifyToken(req.IdentityToken, s.cfg.AppleBundleID)
	if err != nil {
		slog.Error("apple token verification failed", "error", err)
		return nil, fmt.Errorf("failed to verify Apple identity token: %w", err)
	}

	appleUserID := claims.Sub
	email := claims.Email
	if email == "" {
		email = req.Email
	}
	if email == "" {
		email = appleUserID + "@privaterelay.appleid.com"
	}

	var account models.Account
	err = s.db.Where("apple_user_id = ? OR email = ?", appleUserID, email).First(&account).Error
	if err != nil {
		name := req.FullName
		if name == "" {
			name = strings.Split(email, "@")[0]
		}

		account = models.Account{
			ID:            uuid.New(),
			Email:         email,
			Password:      "",
			Name:          name,
			AppleUserID:   &appleUserID,
			AuthProvider:  "apple",
			ProfileStatus: models.ProfileStatusPending,
		}
		if err := s.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to create Apple account: %w", err)
		}
	} else if account.AppleUserID == nil {
		s.db.Model(&account).Updates(map[string]interface{}{
			"apple_user_id": appleUserID,
			"auth_provider": "apple",
		})
		account.AppleUserID = &appleUserID
		account.AuthProvider = "apple"
	}

	return s.generateTokenPair(&account)
}

func (s *AuthService) generateTokenPair(account *models.Account) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(account)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(account)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:            account.ID,
			Email:         account.Email,
			Name:          account.Name,
			ProfileStatus: string(account.ProfileStatus),
			IsAppleUser:   account.AuthProvider == "apple",
		},
	}, nil
}

func (s *AuthService) generateAccessToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":   account.ID.String(),
		"email": account.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(account *models.Account) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    account.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
