// services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kalongo-backend/apperrors"
	"kalongo-backend/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles login and token parsing. Tokens carry only the user
// id; role and department are loaded fresh per request so permission edits
// take effect immediately.
type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret string) *AuthService {
	return &AuthService{DB: db, Secret: []byte(secret), TokenTTL: 24 * time.Hour}
}

type LoginResult struct {
	Token       string       `json:"token"`
	User        *models.User `json:"user"`
	Permissions []string     `json:"permissions"`
}

func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.Validation("username and password required")
	}

	var user models.User
	if err := s.DB.Preload("Role.Permissions").Preload("Department").
		Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", user.ID),
		"iat": now.Unix(),
		"exp": now.Add(s.TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	recordAudit(s.DB, &user, "auth.login", "User", user.ID, nil)
	return &LoginResult{Token: token, User: &user, Permissions: user.PermissionCodes()}, nil
}

// UserFromToken validates a bearer token and loads the user with role
// permissions and department, ready for Authorize/VisibleSectors.
func (s *AuthService) UserFromToken(tokenString string) (*models.User, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, apperrors.ErrUnauthorized
	}

	var user models.User
	if err := s.DB.Preload("Role.Permissions").Preload("Department").
		Where("id = ?", sub).First(&user).Error; err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	return &user, nil
}
