package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrExpiredToken = errors.New("session token expired")
)

// Session is the identity carried inside a signed session token.
type Session struct {
	ID        string
	SubjectID string
	Username  string
	Name      string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type claims struct {
	SubjectID string `json:"subject_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs s with HS256. A fresh token id is assigned when s.ID is empty.
func GenerateToken(key []byte, s Session) (string, Session, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.IssuedAt.IsZero() {
		s.IssuedAt = time.Now()
	}

	c := claims{
		SubjectID: s.SubjectID,
		Username:  s.Username,
		Name:      s.Name,
		Role:      s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			Subject:   s.SubjectID,
			IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(key)
	if err != nil {
		return "", Session{}, fmt.Errorf("token.SignedString -> %w", err)
	}

	return token, s, nil
}

func ParseToken(key []byte, tokenString string) (Session, error) {
	var c claims

	_, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, ErrExpiredToken
		}
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if c.SubjectID == "" || c.Role == "" {
		return Session{}, ErrInvalidToken
	}

	s := Session{
		ID:        c.ID,
		SubjectID: c.SubjectID,
		Username:  c.Username,
		Name:      c.Name,
		Role:      c.Role,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}

	return s, nil
}
