package structs

import (
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Email     *EmailConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
	Session   *SessionConfig
	Shop      *ShopConfig
}

type ServerConfig struct {
	AppName        string        // CaveDuVigneron
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int // in seconds
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	AdminUsername     string
	AdminPasswordHash string // argon2id encoded hash
	LoginMaxAttempts  int
	LoginWindow       time.Duration
}

type EmailConfig struct {
	ApiKey       string
	From         string
	SellerEmail  string // operator inbox receiving every order notification
	SupportEmail string
}

type CacheConfig struct {
	Enabled         bool
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	GeneralLimit   int
	GeneralWindow  time.Duration
	AdminLimit     int
	AdminWindow    time.Duration
	CheckoutLimit  int
	CheckoutWindow time.Duration
}

type SessionConfig struct {
	Key    string
	MaxAge int // in seconds
}

type ShopConfig struct {
	Name              string
	Currency          string // symbol appended to amounts
	MinGiftCardAmount decimal.Decimal
	WebsiteURL        string // storefront link in email footers
	LogoPath          string
	AssetsDir         string // root for local flyer images
	ContactLines      []string
	Disclaimer        string
}
