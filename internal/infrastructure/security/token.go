package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/user"
	"loan-ledger/pkg/id"
)

const issuer = "loan-ledger"

var ErrInvalidToken = errors.New("invalid or expired token")

type claims struct {
	Role     user.Role `json:"role"`
	Approved bool      `json:"approved"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and parses HS256 session tokens carrying the
// (user_id, role, is_approved) triple.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *TokenIssuer) Issue(u *user.User) (string, time.Time, error) {
	now := t.now().UTC()
	exp := now.Add(t.ttl)
	c := claims{
		Role:     u.Role,
		Approved: u.IsApproved,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.NewID32(),
			Subject:   strconv.FormatUint(u.ID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (t *TokenIssuer) Parse(token string) (access.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return access.Principal{}, ErrInvalidToken
	}
	uid, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || uid == 0 || !c.Role.Valid() {
		return access.Principal{}, ErrInvalidToken
	}
	return access.Principal{UserID: uid, Role: c.Role, IsApproved: c.Approved}, nil
}
