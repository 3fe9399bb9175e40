package main

import (
	"fmt"
	"os"

	"vidshare/pkg/config"
	app "vidshare/services/api/internal/app"

	_ "vidshare/services/api/docs" // Swagger docs
)

// @title           VidShare API
// @version         1.0
// @description     Video sharing backend: accounts, notifications, videos, moderation and uploads.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:4000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey UserIDHeader
// @in header
// @name x-user-id
// @description Caller user id. Honoured only when TRUST_IDENTITY_HEADERS is enabled.

// @securityDefinitions.apikey AdminHeader
// @in header
// @name x-admin
// @description "true" marks the caller as admin. Honoured only alongside x-user-id.

const defaultJWTSecret = "your-secret-key-change-in-production"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}
	if cfg.JWTSecret == defaultJWTSecret {
		fmt.Fprintln(os.Stderr, "WARNING: JWT_SECRET is the development default; set it before deploying")
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
