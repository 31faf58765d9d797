// Package cookie binds server-side session ids to the client cookie.
//
// The cookie value is an HS256 JWT whose jti is the session id and whose
// exp mirrors the session expiry. The signature lets the server reject a
// forged or altered cookie before touching the session store. The token
// carries no user data; the session store stays the source of truth.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoCookie      = errors.New("session cookie not present")
	ErrInvalidCookie = errors.New("session cookie invalid")
)

type Codec struct {
	name   string
	secret []byte
	secure bool
	now    func() time.Time
}

func NewCodec(name string, secret []byte, secure bool) *Codec {
	return &Codec{name: name, secret: secret, secure: secure, now: time.Now}
}

// Encode signs the session id into a cookie value
func (c *Codec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(c.now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	value, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return value, nil
}

// Decode verifies a cookie value and returns the session id it names
func (c *Codec) Decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCookie, err)
	}
	if !token.Valid || claims.ID == "" {
		return "", ErrInvalidCookie
	}

	return claims.ID, nil
}

// Read extracts and verifies the session id carried by the request
func (c *Codec) Read(r *http.Request) (string, error) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", ErrNoCookie
	}
	return c.Decode(ck.Value)
}

// Write sets the session cookie on the response
func (c *Codec) Write(w http.ResponseWriter, sessionID string, expiresAt time.Time) error {
	value, err := c.Encode(sessionID, expiresAt)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear instructs the client to discard the session cookie
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
