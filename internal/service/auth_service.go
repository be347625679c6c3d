package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"todoapp/internal/models"
	"todoapp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 6

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Domain errors for auth flows.
var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", minPasswordLen)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles user auth logic.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims. Access carries the token's access kind so a
// token can never be replayed for a purpose it was not issued for.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"user_id"`
	Access string `json:"access"`
}

// Register validates the credentials, stores the user with a bcrypt hash of
// the password, and returns the user with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if !emailRx.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, "", ErrPasswordTooShort
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, "", err
	}

	id, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	u := &models.User{ID: id, Email: email, PasswordHash: hash}
	token, err := s.IssueToken(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks the credentials and issues a new token. A missing user and a
// failed hash comparison collapse into the same error so callers cannot tell
// which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	u, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// IssueToken signs a new auth token for the user and appends it to the
// user's active-token set. Tokens carry no expiry; revocation is the only
// teardown, matching the token-list model. The jti claim makes every issued
// token distinct, so repeated logins grow the token set.
func (s *AuthService) IssueToken(ctx context.Context, userID int64) (string, error) {
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Access: models.AccessAuth,
	})
	token, err := tk.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token for user id=%d: %w", userID, err)
	}

	rec := models.TokenRecord{UserID: userID, Access: models.AccessAuth, Token: token}
	if err := s.users.AddToken(ctx, rec); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateToken verifies the signature, checks the token is still in the
// user's active-token set (revocation check), and returns the user.
func (s *AuthService) ValidateToken(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.Access != models.AccessAuth {
		return nil, ErrInvalidToken
	}

	rec := models.TokenRecord{UserID: claims.UserID, Access: claims.Access, Token: accessToken}
	ok, err := s.users.HasToken(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Revoked, or never issued for this user.
		return nil, ErrInvalidToken
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}
	return u, nil
}

// RevokeToken removes exactly the matching token from the user's set.
// Absence of the token is not an error; persistence failures propagate.
func (s *AuthService) RevokeToken(ctx context.Context, userID int64, token string) error {
	return s.users.RemoveToken(ctx, userID, token)
}

// parseToken verifies the signature and decodes the claims.
func (s *AuthService) parseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
