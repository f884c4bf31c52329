package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenInvalid covers bad signatures, malformed tokens and wrong token kinds
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the exp claim is in the past
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims is the payload of an access token
type AccessClaims struct {
	UserID int64  `json:"userId"`
	Phone  string `json:"phone"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. Refresh tokens carry no phone.
type RefreshClaims struct {
	UserID int64 `json:"userId"`
	jwt.RegisteredClaims
}

// refreshShape is used to detect an access token presented as a refresh token
type refreshShape struct {
	UserID *int64  `json:"userId"`
	Phone  *string `json:"phone"`
	jwt.RegisteredClaims
}

// Token lifetimes are part of the client contract and are not configurable
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// Issuer mints and verifies HS256 session tokens
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer builds an issuer. A nil clock means time.Now.
func NewIssuer(secret []byte, clock func() time.Time) *Issuer {
	if clock == nil {
		clock = time.Now
	}
	return &Issuer{
		secret: secret,
		now:    clock,
	}
}

// IssueAccessToken signs {userId, phone, iat, exp}
func (i *Issuer) IssueAccessToken(userID int64, phone string) (string, error) {
	now := i.now()
	claims := AccessClaims{
		UserID: userID,
		Phone:  phone,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenTTL)),
		},
	}
	return i.sign(claims)
}

// IssueRefreshToken signs {userId, iat, exp}
func (i *Issuer) IssueRefreshToken(userID int64) (string, error) {
	now := i.now()
	claims := RefreshClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(RefreshTokenTTL)),
		},
	}
	return i.sign(claims)
}

// ParseAccessToken verifies an access token and returns its claims
func (i *Issuer) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := i.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Phone == "" {
		return nil, fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}
	return claims, nil
}

// ParseRefreshToken verifies a refresh token and returns its claims
func (i *Issuer) ParseRefreshToken(tokenString string) (*RefreshClaims, error) {
	shape := &refreshShape{}
	if err := i.parse(tokenString, shape); err != nil {
		return nil, err
	}
	if shape.UserID == nil || *shape.UserID == 0 || shape.Phone != nil {
		return nil, fmt.Errorf("%w: not a refresh token", ErrTokenInvalid)
	}
	return &RefreshClaims{UserID: *shape.UserID, RegisteredClaims: shape.RegisteredClaims}, nil
}

func (i *Issuer) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) parse(tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err == nil {
		return nil
	}
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
}
