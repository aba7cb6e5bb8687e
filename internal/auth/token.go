package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleBarbershop Role = "barbershop"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBarbershop
}

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	SubjectID uint
	Role      Role
}

func (c *Claims) Identity() (Identity, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return Identity{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return Identity{SubjectID: uint(id), Role: c.Role}, nil
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(subjectID uint, role Role) (string, error) {
	if !role.Valid() {
		return "", fmt.Errorf("issue token: unknown role %q", role)
	}
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subjectID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry. Every failure wraps
// ErrInvalidToken; expired tokens also wrap jwt.ErrTokenExpired.
func (s *TokenService) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidToken, jwt.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	if _, err := claims.Identity(); err != nil {
		return nil, err
	}
	return claims, nil
}
