package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Staff capabilities checked by the folio routes.
const (
	CapFolioRead         = "folio:read"
	CapFolioPost         = "folio:post"
	CapKitchenPost       = "kitchen:post"
	CapServicesPost      = "services:post"
	CapCashierCollect    = "cashier:collect"
	CapFrontdeskCheckout = "frontdesk:checkout"
)

// RequireCapability aborts with 403 unless the staff token grants cap.
// It must run after JWTAuthStaffMiddleware.
func RequireCapability(cap string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasCapability(c.GetStringSlice(CapsKey), cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Missing capability " + cap})
			return
		}
		c.Next()
	}
}

func hasCapability(caps []string, want string) bool {
	for _, c := range caps {
		if c == want {
			return true
		}
	}
	return false
}
