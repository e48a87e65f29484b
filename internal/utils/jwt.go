package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// ErrInvalidToken is the single error returned for every verification
// failure: wrong signature, unexpected algorithm, expired claims or a
// structurally malformed token.  Callers cannot tell these cases apart,
// so no failure detail reaches a client.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed HS256 JWT along with its expiry.  The
// Token field contains the serialized JWT string; Exp stores the UTC
// expiration time.  Access tokens are presented in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// TokenClaims is the identity carried by a verified access token.
type TokenClaims struct {
    Username string
    IsAdmin  bool
}

// NewAccessToken builds and signs an HS256 JWT asserting a username and its
// admin flag.  ttlHours controls the validity window.  The JWT includes
// standard claims: subject (sub), is_admin, expiration (exp) and issued at
// (iat).
func NewAccessToken(secret, username string, isAdmin bool, ttlHours int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub":      username,
        "is_admin": isAdmin,
        "exp":      exp.Unix(),
        "iat":      time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies a serialized token against the signing secret
// and returns its claims.  Any failure yields ErrInvalidToken.
func ParseAccessToken(secret, raw string) (TokenClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return TokenClaims{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return TokenClaims{}, ErrInvalidToken
    }
    sub, ok := claims["sub"].(string)
    if !ok || sub == "" {
        return TokenClaims{}, ErrInvalidToken
    }
    isAdmin, _ := claims["is_admin"].(bool)
    return TokenClaims{Username: sub, IsAdmin: isAdmin}, nil
}
