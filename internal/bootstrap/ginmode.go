package bootstrap

import "github.com/gin-gonic/gin"

// SetGinMode switches gin to release mode in production and leaves the
// debug default everywhere else.
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
