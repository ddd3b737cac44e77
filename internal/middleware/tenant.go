package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TenantHeader carries the caller's tenant id, resolved upstream by the
// authenticating gateway. Every location-scoped route requires it.
const TenantHeader = "X-Tenant-ID"

const tenantContextKey = "tenantID"

func RequireTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tenantID := c.Request().Header.Get(TenantHeader)
		if tenantID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing tenant id")
		}
		c.Set(tenantContextKey, tenantID)
		return next(c)
	}
}

// TenantID returns the tenant set by RequireTenant.
func TenantID(c echo.Context) string {
	tenantID, _ := c.Get(tenantContextKey).(string)
	return tenantID
}
