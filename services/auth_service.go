package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventra-api/dto"
	"github.com/eventra-api/models"
	"github.com/eventra-api/repositories"
)

// ErrInvalidCredentials indicates that the provided login credentials are
// incorrect or that the account is not yet verified
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles account registration, login and email verification
type AuthService struct {
	users    *repositories.UserRepository
	notifier *Notifier
}

// NewAuthService creates a new auth service instance
func NewAuthService(users *repositories.UserRepository, notifier *Notifier) *AuthService {
	return &AuthService{users: users, notifier: notifier}
}

// Register creates a new user account. When the mailer is configured the
// account starts inactive and a verification email is dispatched; otherwise
// the account is active immediately.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	verificationRequired := s.notifier.Enabled()

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Role:     req.Role,
		IsActive: !verificationRequired,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	if verificationRequired {
		s.notifier.SendVerificationEmail(ctx, user)
	}
	return user, nil
}

// Login authenticates a user and returns a signed token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, fmt.Errorf("email address not verified: %w", ErrInvalidCredentials)
	}

	token, expiresAt, err := GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	// Clear password from response
	responseUser := user
	responseUser.Password = ""

	return &dto.AuthResponse{
		Token:     token,
		User:      responseUser,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifyEmail activates the account identified by the verification token
// (the user id). Verifying an already-active account is benign.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	user, err := s.users.FindByID(ctx, token)
	if err != nil {
		return "", err
	}
	if user.IsActive {
		return "Email already verified.", nil
	}
	if err := s.users.Activate(ctx, user.ID); err != nil {
		return "", err
	}
	return "Email successfully verified. You can now log in.", nil
}

// GenerateToken generates a new JWT token for a user
func GenerateToken(userID, email, role string) (string, time.Time, error) {
	// Get secret key from environment
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	// Set expiration time
	expiresAt := time.Now().Add(24 * time.Hour) // Token expires in 24 hours

	// Create claims with expiry time
	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	// Create the token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token with our secret key
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	// Get secret key from environment
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	// Parse the token
	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	// Check if token is valid
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Get claims
	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
