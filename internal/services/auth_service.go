// Package services – AuthService and UserService
//
// AuthService registers accounts, verifies passwords with bcrypt and issues
// HS256 access tokens carrying the user id (sub) and role. UserService covers
// profile reads and admin role management.
package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/repo"
)

// Actor identifies the authenticated caller of a service method.
type Actor struct {
	ID   uint
	Role string
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// canTouch reports whether the actor owns ownerID or is an admin.
func (a Actor) canTouch(ownerID *uint) bool {
	if a.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == a.ID
}

// UserRepo defines the persistence contract required by AuthService and
// UserService.
type UserRepo interface {
	CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error
	GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error)
	GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error)
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, db *gorm.DB, id uint, role string) error
}

// Claims are the JWT claims issued by AuthService.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Token is a signed access token and its expiry.
type Token struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterInput carries the registration fields.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	WhatsApp string
	Language string
}

// AuthService issues and verifies credentials.
type AuthService struct {
	DB         *gorm.DB
	Repo       UserRepo
	Secret     []byte
	TTL        time.Duration
	BcryptCost int
	Issuer     string

	now func() time.Time
}

// NewAuthService constructs an AuthService. Zero ttl or cost fall back to 24h
// and bcrypt.DefaultCost.
func NewAuthService(db *gorm.DB, r UserRepo, secret string, ttl time.Duration, cost int) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		DB:         db,
		Repo:       r,
		Secret:     []byte(secret),
		TTL:        ttl,
		BcryptCost: cost,
		Issuer:     "huntschedule",
		now:        time.Now,
	}
}

// Register creates a user with the "user" role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	username := strings.TrimSpace(in.Username)
	if username == "" || len(in.Password) < 6 {
		return nil, invalid(CodeInvalidInput, nil, "username and a password of at least 6 characters are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.BcryptCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		WhatsApp:     strings.TrimSpace(in.WhatsApp),
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Language:     strings.TrimSpace(in.Language),
	}
	if err := s.Repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, *domain.User, error) {
	tr := otel.Tracer("services/AuthService")
	ctx, span := tr.Start(ctx, "Login")
	defer span.End()

	u, err := s.Repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	tok, err := s.Issue(u)
	if err != nil {
		return nil, nil, err
	}
	span.SetAttributes(attribute.Int64("user.id", int64(u.ID)))
	return tok, u, nil
}

// Issue signs an access token for u.
func (s *AuthService) Issue(u *domain.User) (*Token, error) {
	now := s.now().UTC()
	exp := now.Add(s.TTL)
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, err
	}
	return &Token{Token: signed, ExpiresAt: exp}, nil
}

// Parse validates a token and returns the actor it identifies.
func (s *AuthService) Parse(token string) (Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return Actor{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Actor{}, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Actor{}, ErrInvalidToken
	}
	return Actor{ID: uint(id), Role: claims.Role}, nil
}

// UserService reads profiles and manages roles.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Repo.ListUsers(ctx, s.DB)
}

// SetRole changes a user's role.
func (s *UserService) SetRole(ctx context.Context, id uint, role string) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "SetRole",
		trace.WithAttributes(attribute.Int64("user.id", int64(id)), attribute.String("role", role)),
	)
	defer span.End()

	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, invalid(CodeInvalidInput, map[string]any{"role": role}, "role must be %q or %q", domain.RoleUser, domain.RoleAdmin)
	}
	if err := s.Repo.UpdateUserRole(ctx, s.DB, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}
