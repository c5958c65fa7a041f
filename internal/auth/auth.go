package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"volunteer-backend/internal/store"
)

// ErrInvalidCredentials is the single failure every login attempt maps
// to. Which check failed is never revealed to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

const TokenTTL = 24 * time.Hour

// User is a role-tagged record returned by a successful authentication.
type User struct {
	Role   string         // "officer", "coordinator" or "student"
	Record map[string]any // the matching row, password removed
}

// Authenticator verifies an (id, password) pair against the stored
// accounts and returns a role-tagged user record or a generic failure.
type Authenticator interface {
	Authenticate(ctx context.Context, id, password string) (*User, error)
}

// PasswordComparer isolates credential comparison so a hashing scheme
// can replace the stored-plaintext comparison without touching the
// lookup logic.
type PasswordComparer interface {
	Compare(supplied, stored string) bool
}

// PlainComparer matches the data as stored: a direct string comparison.
type PlainComparer struct{}

func (PlainComparer) Compare(supplied, stored string) bool {
	return supplied == stored
}

// BcryptComparer treats stored passwords as bcrypt hashes.
type BcryptComparer struct{}

func (BcryptComparer) Compare(supplied, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// NewComparer selects a comparer by configured scheme name.
func NewComparer(scheme string) PasswordComparer {
	if scheme == "bcrypt" {
		return BcryptComparer{}
	}
	return PlainComparer{}
}

// StoreAuthenticator authenticates against the persisted accounts in a
// fixed priority order: officer, then coordinator (active only), then
// student. The first match wins.
type StoreAuthenticator struct {
	store    *store.Store
	comparer PasswordComparer
}

func NewStoreAuthenticator(s *store.Store, comparer PasswordComparer) *StoreAuthenticator {
	return &StoreAuthenticator{store: s, comparer: comparer}
}

func (a *StoreAuthenticator) Authenticate(ctx context.Context, id, password string) (*User, error) {
	if id == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if user, ok := a.tryOfficer(ctx, id, password); ok {
		return user, nil
	}
	if user, ok := a.tryCoordinator(ctx, id, password); ok {
		return user, nil
	}
	if user, ok := a.tryStudent(ctx, id, password); ok {
		return user, nil
	}
	return nil, ErrInvalidCredentials
}

func (a *StoreAuthenticator) tryOfficer(ctx context.Context, id, password string) (*User, bool) {
	pb := a.store.Dialect.NewParamBuilder()
	sql := fmt.Sprintf(`SELECT id, officer_id AS "officerId", password FROM officer_credentials WHERE officer_id = %s`,
		pb.Add(id))
	row, err := store.QueryRow(ctx, a.store.DB, sql, pb.Params()...)
	if err != nil {
		return nil, false
	}
	return a.match(row, "officer", password)
}

func (a *StoreAuthenticator) tryCoordinator(ctx context.Context, id, password string) (*User, bool) {
	pb := a.store.Dialect.NewParamBuilder()
	sql := fmt.Sprintf(`SELECT id, custom_id AS "customId", name, department, password, is_active AS "isActive" FROM coordinators WHERE custom_id = %s`,
		pb.Add(id))
	row, err := store.QueryRow(ctx, a.store.DB, sql, pb.Params()...)
	if err != nil {
		return nil, false
	}
	if !isTruthy(row["isActive"]) {
		return nil, false
	}
	return a.match(row, "coordinator", password)
}

func (a *StoreAuthenticator) tryStudent(ctx context.Context, id, password string) (*User, bool) {
	pb := a.store.Dialect.NewParamBuilder()
	sql := fmt.Sprintf(`SELECT id, custom_id AS "customId", name, department, password, profile_image_url AS "profileImageUrl" FROM students WHERE custom_id = %s`,
		pb.Add(id))
	row, err := store.QueryRow(ctx, a.store.DB, sql, pb.Params()...)
	if err != nil {
		return nil, false
	}
	return a.match(row, "student", password)
}

func (a *StoreAuthenticator) match(row map[string]any, role, password string) (*User, bool) {
	stored, _ := row["password"].(string)
	if !a.comparer.Compare(password, stored) {
		return nil, false
	}
	delete(row, "password")
	return &User{Role: role, Record: row}, true
}

// isTruthy covers SQLite's integer booleans.
func isTruthy(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case float64:
		return b != 0
	}
	return false
}

// Claims is the JWT payload issued on login.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateToken signs an HS256 JWT carrying the account id and role.
func GenerateToken(subject, role, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Role: role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a JWT and returns its claims.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
