package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"easi-website/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is checked first on state-changing requests
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField is the hidden input the rendered forms carry
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFToken returns the token the current request should embed in its forms.
// Outside CSRFMiddleware (e.g. the 404 page) it falls back to the cookie.
func CSRFToken(c *gin.Context) string {
	if token := c.GetString(string(domain.KeyCSRFToken)); token != "" {
		return token
	}
	token, _ := c.Cookie(CSRFTokenCookieName)
	return token
}

// CSRFMiddleware implements the Double-Submit Cookie pattern for the HTML forms.
//
// 1. On any request without a csrf_token cookie, a new token is generated and set
// 2. The token is exposed to handlers through CSRFToken so pages can embed it
// 3. POST requests must echo the cookie value in the X-CSRF-Token header or
//    the csrf_token form field
//
// onReject renders the refusal; nil writes a plain 403.
func CSRFMiddleware(secure bool, onReject func(c *gin.Context, status int, message string)) gin.HandlerFunc {
	if onReject == nil {
		onReject = func(c *gin.Context, status int, message string) {
			c.String(status, message)
		}
	}

	return func(c *gin.Context) {
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)

		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				onReject(c, http.StatusInternalServerError, "Failed to generate security token")
				c.Abort()
				return
			}

			// SameSite=Lax allows the cookie to be sent on top-level navigations
			// but not on cross-site subrequests
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				newToken,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",     // Domain (empty = current domain)
				secure, // Secure (HTTPS only)
				false,  // HttpOnly = false so the page script can read it
			)
			csrfCookie = newToken
		}
		c.Set(string(domain.KeyCSRFToken), csrfCookie)

		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		submitted := c.GetHeader(CSRFTokenHeaderName)
		if submitted == "" {
			submitted = c.PostForm(CSRFTokenFormField)
		}

		if submitted == "" {
			onReject(c, http.StatusForbidden, "Missing CSRF token")
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(submitted), []byte(csrfCookie)) != 1 {
			onReject(c, http.StatusForbidden, "Invalid CSRF token")
			c.Abort()
			return
		}

		c.Next()
	}
}
