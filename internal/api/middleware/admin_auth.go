package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/aziwar/dr-islam-website/backend/internal/auth"
	"github.com/aziwar/dr-islam-website/backend/internal/metrics"
)

// AdminGuard composes lockout tracking, token validation and session
// verification into a single per-request authorization decision for the
// protected admin surface.
type AdminGuard struct {
	validator *auth.TokenValidator
	lockouts  *auth.LockoutTracker
	sessions  *auth.SessionIssuer

	warnOnce sync.Once
}

// NewAdminGuard wires the guard. sessions may be nil; then only the raw
// bearer secret is accepted.
func NewAdminGuard(validator *auth.TokenValidator, lockouts *auth.LockoutTracker, sessions *auth.SessionIssuer) *AdminGuard {
	return &AdminGuard{validator: validator, lockouts: lockouts, sessions: sessions}
}

// Authorize evaluates a request and returns the decision. Lockout is
// checked before the credential so a locked-out caller learns nothing
// about whether their token would have been valid.
func (g *AdminGuard) Authorize(c *gin.Context) auth.Decision {
	identity := c.ClientIP()

	if g.lockouts.IsLocked(identity) {
		return auth.DecisionLockedOut
	}

	if !g.validator.Configured() {
		g.warnOnce.Do(func() {
			GetRequestLogger(c).Warn("no admin secret configured; all admin requests are denied")
		})
		return auth.DecisionUnauthenticated
	}

	header := c.GetHeader("Authorization")
	ok := g.validator.ValidateHeader(header)
	if !ok && g.sessions != nil && strings.HasPrefix(header, "Bearer ") {
		ok = g.sessions.Verify(strings.TrimPrefix(header, "Bearer "))
	}

	if !ok {
		g.lockouts.RecordFailure(identity)
		return auth.DecisionUnauthenticated
	}

	g.lockouts.RecordSuccess(identity)
	return auth.DecisionAllowed
}

// Middleware enforces the decision. Both denial states return the same
// generic body so lockout status is not revealed to the caller; they are
// distinguished in logs and metrics only.
func (g *AdminGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Authorize(c)
		metrics.IncAuthAttempt(decision.String())

		if decision != auth.DecisionAllowed {
			GetRequestLogger(c).WithFields(map[string]interface{}{
				"decision": decision.String(),
				"client":   c.ClientIP(),
				"path":     SanitizePath(c.Request.URL.Path),
			}).Warn("admin request denied")

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
