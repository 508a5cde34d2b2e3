package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"ai-coding-school-go/internal/model"
	"github.com/dgrijalva/jwt-go"
)

const (
	purposeSession = ""
	purposeReset   = "reset"
	purposeState   = "oauth-state"

	resetTTL = time.Hour
	stateTTL = 10 * time.Minute
)

type Claims struct {
	UserID  string     `json:"uid,omitempty"`
	Email   string     `json:"email,omitempty"`
	Role    model.Role `json:"role,omitempty"`
	Purpose string     `json:"purpose,omitempty"`

	// Fingerprint ties session and reset tokens to the password hash they
	// were issued under.
	Fingerprint string `json:"fph,omitempty"`

	jwt.StandardClaims
}

func (c Claims) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// TokenIssuer signs session, password-reset and OAuth state tokens with one
// HMAC key. Each kind carries a purpose so they cannot stand in for each other.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(key string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		key: []byte(key),
		ttl: ttl,
		now: time.Now,
	}
}

func (i *TokenIssuer) sign(claims Claims, ttl time.Duration) (string, error) {
	now := i.now()
	claims.IssuedAt = now.Unix()
	claims.ExpiresAt = now.Add(ttl).Unix()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

func (i *TokenIssuer) parse(tokenString, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.key, nil
	})
	if err != nil || !token.Valid || claims.Purpose != purpose {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Issue returns a session token for user.
func (i *TokenIssuer) Issue(user model.User) (string, error) {
	return i.sign(Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		Fingerprint: i.fingerprint(user.Password),
		StandardClaims: jwt.StandardClaims{
			Subject: user.ID,
		},
	}, i.ttl)
}

func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	return i.parse(tokenString, purposeSession)
}

func (i *TokenIssuer) IssueReset(user model.User) (string, error) {
	return i.sign(Claims{
		UserID:      user.ID,
		Email:       user.Email,
		Purpose:     purposeReset,
		Fingerprint: i.fingerprint(user.Password),
	}, resetTTL)
}

func (i *TokenIssuer) ParseReset(tokenString string) (*Claims, error) {
	return i.parse(tokenString, purposeReset)
}

func (i *TokenIssuer) fingerprint(passwordHash string) string {
	if passwordHash == "" {
		return ""
	}

	mac := hmac.New(sha256.New, i.key)
	mac.Write([]byte(passwordHash))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
}

// Current reports whether claims were issued under user's present password.
// Changing the password retires every earlier session and reset token.
func (i *TokenIssuer) Current(claims *Claims, user model.User) bool {
	return hmac.Equal([]byte(claims.Fingerprint), []byte(i.fingerprint(user.Password)))
}

// IssueState returns the opaque state parameter for an OAuth redirect.
func (i *TokenIssuer) IssueState(provider model.Provider) (string, error) {
	return i.sign(Claims{
		Purpose:        purposeState,
		StandardClaims: jwt.StandardClaims{Audience: string(provider)},
	}, stateTTL)
}

func (i *TokenIssuer) VerifyState(state string, provider model.Provider) error {
	claims, err := i.parse(state, purposeState)
	if err != nil {
		return err
	}
	if !claims.VerifyAudience(string(provider), true) {
		return ErrInvalidToken
	}

	return nil
}
