package services

import (
	"context"
	"time"

	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

const AdminRole = "admin"

// AuthService authenticates the single configured admin account.
type AuthService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	attempts RateLimitStore
	cache    *CacheService
	now      func() time.Time
}

func NewAuthService(logger *gecho.Logger, cfg *structs.Config, attempts RateLimitStore, cache *CacheService) *AuthService {
	return &AuthService{
		logger:   logger,
		cfg:      cfg,
		attempts: attempts,
		cache:    cache,
		now:      time.Now,
	}
}

func loginAttemptKey(ip string) string {
	return "login:" + ip
}

// Login checks credentials and returns a signed access token. Failed and
// successful attempts alike count against the client's window.
func (as *AuthService) Login(ctx context.Context, req *structs.LoginRequest, clientIP string) (string, *structs.AuthClaims, error) {
	count, err := as.attempts.Increment(ctx, loginAttemptKey(clientIP), as.cfg.Auth.LoginWindow)
	if err != nil {
		as.logger.Warn("Login attempt counter unavailable", gecho.Field("error", err))
	} else if count > as.cfg.Auth.LoginMaxAttempts {
		as.logger.Warn("Too many login attempts", gecho.Field("ip", clientIP), gecho.Field("count", count))
		return "", nil, lib.ErrTooManyAttempts
	}

	usernameOk := lib.SecureCompare([]byte(req.Username), []byte(as.cfg.Auth.AdminUsername))
	passwordOk, err := lib.VerifyPassword(req.Password, as.cfg.Auth.AdminPasswordHash)
	if err != nil {
		as.logger.Error("Admin password hash is unusable", gecho.Field("error", err))
		return "", nil, lib.ErrInvalidCredentials
	}
	if !usernameOk || !passwordOk {
		as.logger.Debug("Invalid admin credentials", gecho.Field("ip", clientIP))
		return "", nil, lib.ErrInvalidCredentials
	}

	if err := as.attempts.Reset(ctx, loginAttemptKey(clientIP)); err != nil {
		as.logger.Warn("Could not reset login attempts", gecho.Field("error", err))
	}

	now := as.now()
	claims := &structs.AuthClaims{
		Sub:  as.cfg.Auth.AdminUsername,
		Role: AdminRole,
		Iat:  now,
		Exp:  now.Add(as.cfg.Auth.AccessTokenExpiry),
		Jti:  uuid.New(),
	}

	token, err := lib.SignToken(claims, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return "", nil, err
	}

	as.logger.Info("Admin logged in", gecho.Field("ip", clientIP))
	return token, claims, nil
}

// ValidateToken parses a token and rejects revoked or non-admin ones.
func (as *AuthService) ValidateToken(ctx context.Context, token string) (*structs.AuthClaims, error) {
	claims, err := lib.ParseToken(token, as.cfg.Auth.AccessTokenSecret)
	if err != nil {
		return nil, err
	}
	if claims.Role != AdminRole {
		return nil, lib.ErrInvalidToken
	}

	revoked, err := as.cache.IsTokenBlacklisted(ctx, claims.Jti)
	if err != nil {
		as.logger.Warn("Token blacklist lookup failed", gecho.Field("error", err))
	} else if revoked {
		return nil, lib.ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (as *AuthService) Logout(ctx context.Context, claims *structs.AuthClaims) error {
	return as.cache.BlacklistToken(ctx, claims.Jti, claims.Exp)
}
