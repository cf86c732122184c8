package utils // package utils provides helpers for token creation and hashing

import (
    "crypto/rand"   // secure random bytes for refresh tokens
    "crypto/sha256" // refresh tokens are stored hashed
    "encoding/hex"
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseAccessToken for any token that does
// not verify: bad signature, wrong algorithm, expired or malformed subject.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed JWT and its expiry.
type AccessToken struct {
    Token string
    Exp   time.Time
}

// RefreshToken is the raw value handed to the client.  Only its SHA-256
// hash is stored.
type RefreshToken struct {
    Raw string
    Exp time.Time
}

// Claims carried by access tokens.  Subject holds the decimal user id.
type Claims struct {
    Role string `json:"role"`
    jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c Claims) UserID() (uint64, error) {
    return strconv.ParseUint(c.Subject, 10, 64)
}

// NewAccessToken signs an HS256 JWT for userID valid for ttlMin minutes.
func NewAccessToken(secret string, userID uint64, role string, ttlMin int) (AccessToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlMin) * time.Minute)
    claims := Claims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatUint(userID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies raw against secret and returns its claims.
func ParseAccessToken(secret, raw string) (Claims, error) {
    var claims Claims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return Claims{}, ErrInvalidToken
    }
    if _, err := claims.UserID(); err != nil {
        return Claims{}, ErrInvalidToken
    }
    return claims, nil
}

// NewRefreshToken returns 48 random bytes hex encoded, valid for ttlDays.
func NewRefreshToken(ttlDays int) (RefreshToken, error) {
    buf := make([]byte, 48)
    if _, err := rand.Read(buf); err != nil {
        return RefreshToken{}, err
    }
    return RefreshToken{
        Raw: hex.EncodeToString(buf),
        Exp: time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour),
    }, nil
}

// HashRefreshRaw is the hex SHA-256 of a raw refresh token.
func HashRefreshRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}
