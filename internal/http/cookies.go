package httpx

import (
	"net/http"
	"time"
)

const (
	// SessionCookieName is the cookie carrying the opaque session identifier.
	SessionCookieName = "session_id"
	// RememberMeCookieName is the cookie carrying the opaque remember-me token.
	RememberMeCookieName = "remember_me"
)

// setAuthCookie sets an HttpOnly auth cookie that expires at the given time.
func setAuthCookie(w http.ResponseWriter, r *http.Request, name, value string, expiresAt time.Time) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Expires:  expiresAt,
	})
}

// clearCookie expires the named cookie immediately.
func clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || isForwardedHTTPS(r)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// cookieValue returns the value of the named cookie, or "" if absent.
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
