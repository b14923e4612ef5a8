// Package auth provides credential hashing and bearer-token issuance for
// the HTTP surface. Tokens are HS256 JWTs carrying the user ID; password
// hashes are bcrypt.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credential policy, matching the account rules of the web client.
const (
	MinUsernameLen = 3
	MinPasswordLen = 6
)

// Claims are the token claims: registered set plus the subject user ID.
type claims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}

// Service issues and verifies tokens and hashes credentials.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

// Opts holds parameters for creating a Service.
type Opts struct {
	Secret     string
	Issuer     string
	TokenTTL   time.Duration
	BcryptCost int
	Now        func() time.Time // defaults to time.Now
}

// New creates a Service. The signing secret is required.
func New(opts Opts) (*Service, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("auth: signing secret is required")
	}
	if opts.Issuer == "" {
		opts.Issuer = "impulse"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 72 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		secret: []byte(opts.Secret),
		issuer: opts.Issuer,
		ttl:    opts.TokenTTL,
		cost:   opts.BcryptCost,
		now:    opts.Now,
	}, nil
}

// HashPassword bcrypt-hashes a plaintext password.
func (s *Service) HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", fmt.Errorf("auth: password must be at least %d characters", MinPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash.
func (s *Service) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("auth: verify password: %w", err)
	}
	return nil
}

// IssueToken mints a signed bearer token for the user.
func (s *Service) IssueToken(userID uint) (string, error) {
	now := s.now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the user ID it names.
func (s *Service) VerifyToken(tokenString string) (uint, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid || c.UserID == 0 {
		return 0, fmt.Errorf("auth: invalid token")
	}
	return c.UserID, nil
}
