package utils

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// AuthoritiesClaim holds the space separated roles of the subject.
const AuthoritiesClaim = "auth"

type TokenData struct {
	Sub         string
	Authorities []string
	Exp         int64
}

// TokenValidator checks access tokens against a shared HMAC secret or a
// remote JWKS.
type TokenValidator struct {
	keyfunc jwt.Keyfunc
	methods []string
}

// NewHMACValidator accepts tokens signed with the base64 encoded secret.
func NewHMACValidator(base64Secret string) (*TokenValidator, error) {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("decode jwt secret: %w", err)
	}
	if len(secret) < 32 {
		return nil, errors.New("jwt secret must be at least 256 bits")
	}

	return &TokenValidator{
		keyfunc: func(*jwt.Token) (any, error) { return secret, nil },
		methods: []string{"HS256", "HS384", "HS512"},
	}, nil
}

// NewJWKSValidator accepts tokens signed by any key published at jwksURL.
func NewJWKSValidator(ctx context.Context, jwksURL string) (*TokenValidator, error) {
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
	}

	log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
	return &TokenValidator{
		keyfunc: jwks.Keyfunc,
		methods: []string{"RS256", "RS384", "RS512", "ES256", "ES384", "ES512"},
	}, nil
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func (v *TokenValidator) ValidateToken(tokenString string) (*TokenData, error) {
	clean := sanitizeToken(tokenString)
	if clean == "" {
		return nil, errors.New("missing token")
	}

	token, err := jwt.Parse(clean, v.keyfunc, jwt.WithValidMethods(v.methods))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	return &TokenData{
		Sub:         getValue(claims, "sub"),
		Authorities: strings.Fields(getValue(claims, AuthoritiesClaim)),
		Exp:         getInt64(claims, "exp"),
	}, nil
}

func (v *TokenValidator) ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return v.ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
