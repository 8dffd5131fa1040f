package http

import (
	"github.com/satya0dev/getitdone/internal/auth"
	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/database"
	"github.com/satya0dev/getitdone/internal/interest"
	"github.com/satya0dev/getitdone/internal/oauth2"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces the long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database        *database.Database
	ProjectStore    ProjectStore
	InterestService *interest.Service
	AuditStore      AuditStore

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// Third-party sign-in (optional)
	OAuthController *oauth2.Controller

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
