package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token subject kinds.
const (
	KindUser  = "user"
	KindAdmin = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims identify either a marketplace user or an admin.
type Claims struct {
	Kind string `json:"kind"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SubjectID returns the numeric id stored in the subject claim.
func (c *Claims) SubjectID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func NewTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	return TokenIssuer{Secret: []byte(secret), TTL: ttl, Issuer: "hotel-marketplace"}
}

func (t TokenIssuer) Issue(kind string, id uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Kind: kind,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(id), 10),
			Issuer:    t.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t TokenIssuer) Parse(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindUser && claims.Kind != KindAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
