package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/gigmarket/internal/domain/model"
)

const defaultIssuer = "gigmarket"

// Claims is the JWT payload: user id and role next to the registered claims.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTStrategy signs HS256 tokens with a shared secret.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	issuer := opts.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}
}

// IssueToken signs a token for the identity.
func (s *JWTStrategy) IssueToken(identity model.Identity) (string, error) {
	if identity.IsZero() {
		return "", ErrInvalidToken
	}
	now := s.now()
	claims := Claims{
		UserID: identity.UserID,
		Role:   identity.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry and returns the identity.
func (s *JWTStrategy) ParseToken(token string) (model.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return model.Identity{}, errors.Join(ErrInvalidToken, err)
	}

	role, err := model.ParseRole(claims.Role)
	if err != nil || claims.UserID == "" {
		return model.Identity{}, ErrInvalidToken
	}
	return model.Identity{UserID: claims.UserID, Role: role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
