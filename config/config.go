package config

import (
	"caviste_server/structs"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "CaveDuVigneron_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 30*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-CSRF-Token"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Content-Disposition"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "caviste_db"),
				SSLMode:      getEnvAsString("DB_SSL_MODE", "disable"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 8*time.Hour),
				AdminUsername:     getEnvAsString("ADMIN_USERNAME", "admin"),
				AdminPasswordHash: getEnvAsString("ADMIN_PASSWORD_HASH", ""),
				LoginMaxAttempts:  getEnvAsInt("AUTH_LOGIN_MAX_ATTEMPTS", 5),
				LoginWindow:       getEnvAsTimeDuration("AUTH_LOGIN_WINDOW", 15*time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey:       getEnvAsString("RESEND_API_KEY", ""),
				From:         getEnvAsString("EMAIL_FROM", "La Cave du Vigneron <boutique@cave-du-vigneron.fr>"),
				SellerEmail:  getEnvAsString("EMAIL_SELLER", "commandes@cave-du-vigneron.fr"),
				SupportEmail: getEnvAsString("EMAIL_SUPPORT", "contact@cave-du-vigneron.fr"),
			},
			Cache: &structs.CacheConfig{
				Enabled:         getEnvAsBool("CACHE_ENABLED", false),
				Address:         getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("CACHE_USERNAME", ""),
				Password:        getEnvAsString("CACHE_PASSWORD", ""),
				DB:              getEnvAsInt("CACHE_DB", 0),
				PoolSize:        getEnvAsInt("CACHE_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("CACHE_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("CACHE_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("CACHE_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("CACHE_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("CACHE_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("CACHE_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", true),
				GeneralLimit:   getEnvAsInt("RATE_LIMIT_GENERAL", 120),
				GeneralWindow:  getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),
				AdminLimit:     getEnvAsInt("RATE_LIMIT_ADMIN", 300),
				AdminWindow:    getEnvAsTimeDuration("RATE_LIMIT_ADMIN_WINDOW", time.Minute),
				CheckoutLimit:  getEnvAsInt("RATE_LIMIT_CHECKOUT", 10),
				CheckoutWindow: getEnvAsTimeDuration("RATE_LIMIT_CHECKOUT_WINDOW", 10*time.Minute),
			},
			Session: &structs.SessionConfig{
				Key:    getEnvAsString("SESSION_KEY", "dev_session_key_change_me_32bytes"),
				MaxAge: getEnvAsInt("SESSION_MAX_AGE", 7*24*3600),
			},
			Shop: &structs.ShopConfig{
				Name:              getEnvAsString("SHOP_NAME", "La Cave du Vigneron"),
				Currency:          getEnvAsString("SHOP_CURRENCY", "€"),
				MinGiftCardAmount: getEnvAsDecimal("SHOP_GIFT_CARD_MIN_AMOUNT", decimal.NewFromInt(10)),
				WebsiteURL:        getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
				LogoPath:          getEnvAsString("SHOP_LOGO_PATH", "assets/logo.png"),
				AssetsDir:         getEnvAsString("SHOP_ASSETS_DIR", "assets"),
				ContactLines: getEnvAsSlice("SHOP_CONTACT_LINES", []string{
					"La Cave du Vigneron",
					"12 rue des Vendanges, 21200 Beaune",
					"03 80 00 00 00",
					"contact@cave-du-vigneron.fr",
				}),
				Disclaimer: getEnvAsString("SHOP_GIFT_CARD_DISCLAIMER",
					"Carte valable un an à compter de sa date d'émission, utilisable en une ou plusieurs fois en boutique. "+
						"Elle ne peut être ni échangée ni remboursée, même partiellement, et ne peut faire l'objet d'aucun rendu de monnaie. "+
						"L'abus d'alcool est dangereux pour la santé, à consommer avec modération."),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
