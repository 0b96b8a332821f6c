package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
)

// getRateLimitForEndpoint determines which rate limit to apply based on config
func (mw *Middleware) getRateLimitForEndpoint(path, method string) (int, time.Duration) {
	// Order submission and login - strictest limits
	if method == http.MethodPost && (path == "/gift-cards/orders" ||
		path == "/orders/checkout" ||
		path == "/auth/login") {
		return mw.cfg.RateLimit.CheckoutLimit, mw.cfg.RateLimit.CheckoutWindow
	}

	if strings.HasPrefix(path, "/admin") {
		return mw.cfg.RateLimit.AdminLimit, mw.cfg.RateLimit.AdminWindow
	}

	return mw.cfg.RateLimit.GeneralLimit, mw.cfg.RateLimit.GeneralWindow
}

// ClientIP extracts the client address. chi's RealIP middleware has already
// folded X-Forwarded-For / X-Real-IP into RemoteAddr.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateRateLimitKey groups requests by their first two path segments so
// /admin/orders/<id> and /admin/orders share one counter.
func generateRateLimitKey(ip, path string) string {
	parts := strings.SplitN(strings.Trim(path, "/"), "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return fmt.Sprintf("%s:/%s", ip, strings.Join(parts, "/"))
}

// RateLimitMiddleware counts requests per client and route group in the shared
// store. Store failures let the request through.
func (mw *Middleware) RateLimitMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !mw.cfg.RateLimit.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			// Skip rate limiting for health checks and scrapes
			if r.URL.Path == "/" || strings.HasPrefix(r.URL.Path, "/health") || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			clientIP := ClientIP(r)
			limit, window := mw.getRateLimitForEndpoint(r.URL.Path, r.Method)
			key := generateRateLimitKey(clientIP, r.URL.Path)

			count, err := mw.rateLimits.Increment(r.Context(), key, window)
			if err != nil {
				mw.logger.Warn("Rate limit store error, allowing request",
					gecho.Field("error", err),
					gecho.Field("ip", clientIP),
					gecho.Field("key", key),
				)
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

			if count > limit {
				mw.logger.Warn("Rate limit exceeded",
					gecho.Field("ip", clientIP),
					gecho.Field("key", key),
					gecho.Field("count", count),
					gecho.Field("limit", limit),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
				gecho.TooManyRequests(w,
					gecho.WithMessage("Trop de requêtes, réessayez plus tard"),
					gecho.WithData(map[string]any{
						"limit":       limit,
						"retry_after": int(window.Seconds()),
					}),
					gecho.Send(),
				)
				return
			}

			remaining := max(0, limit-count)
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

			// Log if getting close to limit (80% threshold)
			if count > int(float64(limit)*0.8) {
				mw.logger.Debug("Rate limit warning",
					gecho.Field("ip", clientIP),
					gecho.Field("key", key),
					gecho.Field("count", count),
					gecho.Field("remaining", remaining),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}
