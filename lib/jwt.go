package lib

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"caviste_server/structs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignToken signs the claims with HS256
func SignToken(claims *structs.AuthClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  claims.Sub,
		"role": claims.Role,
		"iat":  claims.Iat.Unix(),
		"exp":  claims.Exp.Unix(),
		"jti":  claims.Jti.String(),
	})
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a JWT token string and returns the claims
func ParseToken(tokenStr string, secret string) (*structs.AuthClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: invalid sub claim", ErrInvalidToken)
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid role claim", ErrInvalidToken)
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid iat claim", ErrInvalidToken)
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: invalid exp claim", ErrInvalidToken)
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid jti claim", ErrInvalidToken)
	}
	jti, err := uuid.Parse(jtiStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid UUID in jti claim", ErrInvalidToken)
	}

	return &structs.AuthClaims{
		Sub:  sub,
		Role: role,
		Iat:  time.Unix(int64(iat), 0),
		Exp:  time.Unix(int64(exp), 0),
		Jti:  jti,
	}, nil
}

// ExtractClaims reads and validates the access token cookie
func ExtractClaims(r *http.Request, secret string) (*structs.AuthClaims, error) {
	accessToken, err := GetCookieValue(AccessCookieName, r)
	if err != nil {
		return nil, err
	}

	return ParseToken(accessToken, secret)
}
