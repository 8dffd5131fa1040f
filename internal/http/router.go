package http

import (
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/auth"
	"github.com/satya0dev/getitdone/internal/database/users"
	"github.com/satya0dev/getitdone/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// Apply CSRF protection if auth is enabled
	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Apply session middleware if enabled
	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Apply auth middleware if enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Next()
		})
	}

	// Inject auth data for templates
	router.Use(AuthContextMiddleware(cfg.AuthConfig.Mode))

	// Define custom template functions
	funcMap := template.FuncMap{
		"subtract": func(a, b int) int {
			return a - b
		},
		"truncate": func(s string, n int) string {
			if len(s) <= n {
				return s
			}
			return strings.TrimSpace(s[:n]) + "…"
		},
	}

	// Load HTML templates with custom functions
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	// Serve static files
	router.Static("/static", cfg.StaticPath)

	// Register auth routes if auth service is available
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig)
		if err == nil {
			authController.RegisterRoutes(router)
		}

		// Profile routes
		if cfg.Database != nil && cfg.InterestService != nil {
			userStore := users.NewRepository(cfg.Database.DB)
			profileController := NewProfileController(cfg.AuthService, userStore, cfg.InterestService)
			router.GET("/profile", profileController.ProfilePage)
			router.POST("/profile/whatsapp", profileController.UpdateWhatsApp)
			router.POST("/profile/password", profileController.ChangePassword)
		}
	}

	// Third-party sign-in routes
	if cfg.OAuthController != nil {
		cfg.OAuthController.RegisterRoutes(router)
	}

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	if cfg.ProjectStore != nil && cfg.InterestService != nil {
		projectsController := NewProjectsController(cfg.ProjectStore, cfg.InterestService)
		interestController := NewInterestController(cfg.InterestService, cfg.AuditStore)
		pagesController := NewPagesController(cfg.ProjectStore, projectsController)

		// Projects API
		router.GET("/api/projects", projectsController.ListProjects)
		router.GET("/api/projects/:id", projectsController.GetProject)

		// Interest API
		router.POST("/api/projects/:id/interest", interestController.ExpressInterest)
		router.DELETE("/api/projects/:id/interest", interestController.WithdrawInterest)
		router.GET("/api/interests", interestController.ListInterests)

		// Admin project management
		if cfg.AuthMiddleware != nil {
			adminOnly := cfg.AuthMiddleware.RequireRole(entities.UserRoleAdmin)
			router.POST("/api/projects", adminOnly, projectsController.CreateProject)
			router.PATCH("/api/projects/:id/status", adminOnly, projectsController.UpdateStatus)
			router.POST("/api/projects/:id/approve", adminOnly, projectsController.ApproveFreelancer)
			router.GET("/api/projects/:id/interests", adminOnly, interestController.ListProjectInterests)
			if auditLog, ok := cfg.AuditStore.(AuditLog); ok {
				router.GET("/api/audit", adminOnly, NewAuditController(auditLog).ListEvents)
			}
		} else {
			router.POST("/api/projects", projectsController.CreateProject)
			router.PATCH("/api/projects/:id/status", projectsController.UpdateStatus)
			router.POST("/api/projects/:id/approve", projectsController.ApproveFreelancer)
			router.GET("/api/projects/:id/interests", interestController.ListProjectInterests)
		}

		// UI routes
		router.GET("/", pagesController.HomePage)
		router.GET("/projects/:id", pagesController.ProjectPage)
		router.GET("/about", pagesController.AboutPage)
		router.GET("/privacy", pagesController.PrivacyPage)
		router.GET("/terms", pagesController.TermsPage)
		router.GET("/host-projects", pagesController.HostProjectsPage)
	}

	return router
}
