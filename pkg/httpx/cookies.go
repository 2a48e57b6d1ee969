package httpx

import (
	"net/http"
	"time"
)

const (
	AccessJWTCookie   = "campusfound_access"
	RefreshJWTCookie  = "campusfound_refresh"
	RefreshCookiePath = "/v1/auth/refresh"
)

// SetAuthCookies writes both token cookies. The refresh cookie is scoped
// to the refresh endpoint only.
func SetAuthCookies(w http.ResponseWriter, domain, accessToken, refreshToken string, accessExp, refreshExp time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessJWTCookie,
		Value:    accessToken,
		Path:     "/",
		Domain:   domain,
		Expires:  time.Now().Add(accessExp).UTC(),
		MaxAge:   int(accessExp.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshJWTCookie,
		Value:    refreshToken,
		Path:     RefreshCookiePath,
		Domain:   domain,
		Expires:  time.Now().Add(refreshExp).UTC(),
		MaxAge:   int(refreshExp.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func ClearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   AccessJWTCookie,
		Path:   "/",
		MaxAge: -1,
	})
	http.SetCookie(w, &http.Cookie{
		Name:   RefreshJWTCookie,
		Path:   RefreshCookiePath,
		MaxAge: -1,
	})
}
