package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "dataproc_session"

var (
	ErrInvalidPassword = errors.New("password incorrect")
	ErrInvalidSession  = errors.New("invalid or expired session")
)

type sessionClaims struct {
	jwt.RegisteredClaims
}

// gate implements the shared password gate: a bcrypt comparison on login,
// signed session cookies afterwards. There is no per-user state - every
// operator shares the one password and sessions carry only an ID and expiry.
type gate struct {
	passwordHash string
	secret       []byte
	ttl          time.Duration
}

func (g *gate) login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(g.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}

	return g.issue()
}

func (g *gate) issue() (string, error) {
	now := time.Now()

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   "operator",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)

	return token.SignedString(g.secret)
}

func (g *gate) validate(tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
