//go:build release
// +build release

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/config"
)

// initializeGin sets up Gin in release mode for production builds
func initializeGin(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// Use gin.New() instead of gin.Default() to avoid debug middleware in release mode
	router := gin.New()

	// The dashboard is meant to sit behind a local reverse proxy or be
	// accessed directly, so don't trust any proxies by default.
	router.SetTrustedProxies(nil)

	return router
}
