package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/auth"
	"github.com/satya0dev/getitdone/internal/interest"
)

// UserStore defines the database operations the profile page needs beyond
// the auth service.
type UserStore interface {
	UpdateWhatsAppNumber(userID uint, number string) error
}

// ProfileController handles user profile operations.
type ProfileController struct {
	authService *auth.Service
	users       UserStore
	interest    *interest.Service
}

// NewProfileController creates a new ProfileController.
func NewProfileController(authService *auth.Service, users UserStore, interestService *interest.Service) *ProfileController {
	return &ProfileController{
		authService: authService,
		users:       users,
		interest:    interestService,
	}
}

// ProfilePage renders the user profile page.
func (pc *ProfileController) ProfilePage(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		c.Redirect(http.StatusFound, "/login?next=/profile")
		return
	}

	user, err := pc.authService.GetUserByID(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading user: %s", err.Error())
		return
	}

	projects, err := pc.interest.ListInterests(userID)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading interests: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "profile", gin.H{
		"User":        user,
		"Projects":    projects,
		"InterestCap": pc.interest.Cap(),
		"HasPassword": user.PasswordHash != "",
		"Saved":       c.Query("saved") == "1",
		"Error":       c.Query("error"),
		"Auth":        GetAuthTemplateData(c),
	})
}

// UpdateWhatsApp stores or replaces the user's WhatsApp contact number.
// POST /profile/whatsapp
func (pc *ProfileController) UpdateWhatsApp(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	number := c.PostForm("whatsapp_number")
	if err := interest.ValidateContactNumber(number); err != nil {
		pc.redirectProfile(c, "Enter the number in international format, e.g. +15551234567")
		return
	}

	if err := pc.users.UpdateWhatsAppNumber(userID, number); err != nil {
		respondInternalError(c, err, "update whatsapp number")
		return
	}

	c.Redirect(http.StatusFound, "/profile?saved=1")
}

// ChangePassword handles password change requests.
// POST /profile/password
func (pc *ProfileController) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	currentPassword := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")
	confirmPassword := c.PostForm("confirm_password")

	if newPassword != confirmPassword {
		pc.redirectProfile(c, "New passwords do not match")
		return
	}

	err := pc.authService.ChangePassword(userID, currentPassword, newPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidPassword):
			pc.redirectProfile(c, "Current password is incorrect")
		case errors.Is(err, auth.ErrPasswordTooShort):
			pc.redirectProfile(c, "Password must be at least 12 characters")
		case errors.Is(err, auth.ErrPasswordTooLong):
			pc.redirectProfile(c, "Password is too long")
		default:
			respondInternalError(c, err, "change password")
		}
		return
	}

	c.Redirect(http.StatusFound, "/profile?saved=1")
}

func (pc *ProfileController) redirectProfile(c *gin.Context, errMsg string) {
	c.Redirect(http.StatusFound, "/profile?error="+url.QueryEscape(errMsg))
}
