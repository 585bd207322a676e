package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode selects release mode in production, which also hides upstream
// error detail from API responses.
func SetGinMode(production bool) {
	if production {
		gin.SetMode(gin.ReleaseMode)
		return
	}
	gin.SetMode(gin.DebugMode)
}
