package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Token lifetimes. The refresh variant is issued with the second secret
// but is not wired into any route.
const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// ErrTokenExpired distinguishes an expired token from any other
// verification failure.
var ErrTokenExpired = errors.New("token has expired")

// Claims carries the account id of the token owner.
type Claims struct {
	AccountID string `json:"accountId"`
	jwt.StandardClaims
}

// TokenService signs and verifies the application's JWT credentials.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
}

// NewTokenService builds a token service from the two signing secrets.
func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// IssueAccessToken signs a 2-hour access token for the account.
func (t *TokenService) IssueAccessToken(accountID string) (string, error) {
	return t.sign(accountID, AccessTokenTTL, t.accessSecret)
}

// IssueRefreshToken signs a 7-day refresh token for the account.
func (t *TokenService) IssueRefreshToken(accountID string) (string, error) {
	return t.sign(accountID, RefreshTokenTTL, t.refreshSecret)
}

// VerifyAccessToken validates signature and expiry and returns the
// account id. Expired tokens yield ErrTokenExpired.
func (t *TokenService) VerifyAccessToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.accessSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	return claims.AccountID, nil
}

func (t *TokenService) sign(accountID string, ttl time.Duration, secret []byte) (string, error) {
	claims := &Claims{
		AccountID: accountID,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(ttl).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
