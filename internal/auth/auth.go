// Package auth issues and verifies session tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
	"github.com/MikeMC777/restaurant-pos/internal/user"
)

// Session identifies the staff member performing an operation. It is passed
// explicitly to every operation that needs it.
type Session struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
}

func (s Session) IsAdmin() bool { return s.Role == user.RoleAdmin }

func SessionOf(u *user.User) Session {
	return Session{UserID: u.ID, Email: u.Email, Role: u.Role}
}

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(s Session) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	claims := Claims{
		Email: s.Email,
		Role:  string(s.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *Tokens) Parse(token string) (Session, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return Session{}, apperr.Unauthorized("invalid token")
	}
	if claims.Subject == "" {
		return Session{}, apperr.Unauthorized("invalid claims")
	}
	return Session{UserID: claims.Subject, Email: claims.Email, Role: user.Role(claims.Role)}, nil
}
