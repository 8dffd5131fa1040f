package oauth2

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/auth"
)

const stateCookieName = "oauth_state"

// Controller handles the web OAuth2 sign-in flow. On a successful callback
// it resolves or creates the local account and starts a session, so the
// rest of the app never sees provider tokens.
type Controller struct {
	registry       *Registry
	authService    *auth.Service
	sessionManager *auth.SessionManager
	redirectURL    string
	secureCookies  bool
}

// NewController creates a sign-in controller for the given providers.
// redirectURL is the callback URL registered with the provider; when empty
// the provider uses its registered default.
func NewController(registry *Registry, authService *auth.Service, sessionManager *auth.SessionManager, redirectURL string, secureCookies bool) *Controller {
	return &Controller{
		registry:       registry,
		authService:    authService,
		sessionManager: sessionManager,
		redirectURL:    redirectURL,
		secureCookies:  secureCookies,
	}
}

// RegisterRoutes registers the sign-in routes on the router.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/auth/:provider", ctrl.Start)
	router.GET("/auth/:provider/callback", ctrl.Callback)
}

// Start redirects the browser to the provider's authorization page.
func (ctrl *Controller) Start(c *gin.Context) {
	provider, err := ctrl.registry.Get(c.Param("provider"))
	if err != nil {
		ctrl.failLogin(c, "Unknown sign-in provider")
		return
	}

	state, err := GenerateState()
	if err != nil {
		ctrl.failLogin(c, "Could not start sign-in")
		return
	}

	authURL, err := provider.BuildAuthURL(ctrl.redirectURL, state)
	if err != nil {
		ctrl.failLogin(c, "Could not start sign-in")
		return
	}

	// State round-trips through a short-lived cookie; verified in Callback
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/auth/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   ctrl.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	c.Redirect(http.StatusFound, authURL)
}

// Callback completes the flow: verifies state, exchanges the code for a
// token, fetches the account identity and logs the user in.
func (ctrl *Controller) Callback(c *gin.Context) {
	provider, err := ctrl.registry.Get(c.Param("provider"))
	if err != nil {
		ctrl.failLogin(c, "Unknown sign-in provider")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		log.Printf("oauth: provider returned error: %s", errParam)
		ctrl.failLogin(c, "Sign-in was cancelled")
		return
	}

	stateCookie, err := c.Request.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || c.Query("state") != stateCookie.Value {
		ctrl.failLogin(c, "Sign-in session expired, please try again")
		return
	}
	ctrl.clearStateCookie(c)

	code := c.Query("code")
	if code == "" {
		ctrl.failLogin(c, "No authorization code received")
		return
	}

	token, err := provider.ExchangeCode(c.Request.Context(), code, ctrl.redirectURL)
	if err != nil {
		log.Printf("oauth: code exchange failed: %v", err)
		ctrl.failLogin(c, "Sign-in failed, please try again")
		return
	}

	account, err := provider.GetAccountInfo(c.Request.Context(), token.AccessToken)
	if err != nil {
		log.Printf("oauth: account lookup failed: %v", err)
		ctrl.failLogin(c, "Sign-in failed, please try again")
		return
	}

	user, err := ctrl.authService.GetOrCreateOAuthUser(provider.Name(), account.AccountID, account.Name, account.Email)
	if err != nil {
		log.Printf("oauth: account resolution failed: %v", err)
		ctrl.failLogin(c, "Sign-in failed, please try again")
		return
	}

	if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("oauth: session creation failed: %v", err)
		ctrl.failLogin(c, "Sign-in failed, please try again")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (ctrl *Controller) clearStateCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/auth/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (ctrl *Controller) failLogin(c *gin.Context, message string) {
	c.Redirect(http.StatusFound, "/login?error="+url.QueryEscape(message))
}
