package lib

import (
	"caviste_server/config"
	"net/http"
	"time"
)

const (
	AccessCookieName = "caviste_access"
	CSRFCookieName   = "csrf"
	CSRFHeaderName   = "X-CSRF-Token"
)

// baseCookie applies the environment's SameSite and Secure policy
func baseCookie(key, val string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     key,
		Value:    val,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	}

	if config.IsProduction() {
		// storefront and API live on different subdomains
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	}

	return cookie
}

// SetCookie sets a secure, HttpOnly cookie for authentication usage
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	cookie := baseCookie(key, val)
	cookie.Expires = expiry
	http.SetCookie(w, cookie)
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, w http.ResponseWriter) {
	cookie := baseCookie(key, "")
	cookie.Expires = time.Now().Add(-time.Hour)
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)
}

// SetCSRFCookie sets a CSRF token cookie that must be readable by JavaScript
func SetCSRFCookie(val string, expiry time.Time, w http.ResponseWriter) {
	cookie := baseCookie(CSRFCookieName, val)
	cookie.Expires = expiry
	cookie.MaxAge = int(time.Until(expiry).Seconds())
	cookie.HttpOnly = false
	http.SetCookie(w, cookie)
}
