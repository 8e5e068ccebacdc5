package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims carried by operator access tokens.
const (
	ClaimOperatorID = "operator_id"
	ClaimIsAdmin    = "is_admin"
	ClaimType       = "type"

	TokenTypeAccess = "access"
)

type Service interface {
	// GenerateAccessToken signs a token for an operator. Admin operators may run destructive operations.
	GenerateAccessToken(operatorID string, admin bool) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	return &JWTService{
		accessTokenExpirationTime: exp,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(operatorID string, admin bool) (string, int64, error) {
	expiresAt := time.Now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimOperatorID: operatorID,
		ClaimIsAdmin:    admin,
		ClaimType:       TokenTypeAccess,
		"exp":           expiresAt,
	})
	return tokenString, expiresAt, err
}
