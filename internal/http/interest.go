package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/entities"
	"github.com/satya0dev/getitdone/internal/interest"
)

// AuditStore records interest actions for the audit trail.
type AuditStore interface {
	LogEvent(event *entities.AuditEvent) error
}

type InterestController struct {
	service *interest.Service
	auditor AuditStore
}

func NewInterestController(service *interest.Service, auditor AuditStore) *InterestController {
	return &InterestController{
		service: service,
		auditor: auditor,
	}
}

type expressInterestRequest struct {
	ContactNumber string `json:"contact_number"`
}

// ExpressInterest registers the authenticated freelancer's interest in a
// project, capturing their WhatsApp number on first use.
// POST /api/projects/:id/interest
func (ic *InterestController) ExpressInterest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// The body is optional; users with a stored number send none
	var req expressInterestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
	} else {
		req.ContactNumber = c.PostForm("contact_number")
	}

	record, err := ic.service.ExpressInterest(userID, projectID, req.ContactNumber)
	if err != nil {
		ic.audit(c, userID, &projectID, "interest_express", entities.AuditStatusRejected, err)
		ic.respondInterestError(c, err, "express interest")
		return
	}

	ic.audit(c, userID, &projectID, "interest_express", entities.AuditStatusSuccess, nil)
	respondCreated(c, record)
}

// WithdrawInterest removes the authenticated freelancer's interest.
// DELETE /api/projects/:id/interest
func (ic *InterestController) WithdrawInterest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ic.service.WithdrawInterest(userID, projectID); err != nil {
		ic.audit(c, userID, &projectID, "interest_withdraw", entities.AuditStatusRejected, err)
		ic.respondInterestError(c, err, "withdraw interest")
		return
	}

	ic.audit(c, userID, &projectID, "interest_withdraw", entities.AuditStatusSuccess, nil)
	respondSuccess(c, "interest withdrawn")
}

// ListInterests returns the projects the authenticated user is interested
// in, oldest expression first.
// GET /api/interests
func (ic *InterestController) ListInterests(c *gin.Context) {
	userID := GetUserID(c)
	if userID == 0 {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	projects, err := ic.service.ListInterests(userID)
	if err != nil {
		respondInternalError(c, err, "list interests")
		return
	}

	count, err := ic.service.ActiveInterestCount(userID)
	if err != nil {
		respondInternalError(c, err, "list interests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects":  projects,
		"count":     count,
		"max_count": ic.service.Cap(),
	})
}

// ListProjectInterests returns the freelancers interested in a project with
// their contact numbers, so the owner can reach out. Admin only.
// GET /api/projects/:id/interests
func (ic *InterestController) ListProjectInterests(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := ic.service.ProjectInterests(projectID)
	if err != nil {
		respondInternalError(c, err, "list project interests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interests": details,
		"count":     len(details),
	})
}

// respondInterestError maps service errors to HTTP statuses. Duplicate
// expressions conflict (409), the cap is a semantic rejection (422).
func (ic *InterestController) respondInterestError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, interest.ErrUserNotFound):
		respondNotFound(c, "user")
	case errors.Is(err, interest.ErrProjectNotFound):
		respondNotFound(c, "project")
	case errors.Is(err, interest.ErrProjectNotOpen):
		respondError(c, http.StatusConflict, "project is not open for interest")
	case errors.Is(err, interest.ErrAlreadyInterested):
		respondError(c, http.StatusConflict, "interest already expressed for this project")
	case errors.Is(err, interest.ErrNotInterested):
		respondError(c, http.StatusConflict, "no interest recorded for this project")
	case errors.Is(err, interest.ErrInterestCapReached):
		respondError(c, http.StatusUnprocessableEntity, "active interest limit reached")
	case errors.Is(err, interest.ErrContactRequired):
		respondBadRequest(c, "a WhatsApp contact number is required")
	case errors.Is(err, interest.ErrInvalidContact):
		respondBadRequest(c, "invalid WhatsApp contact number")
	default:
		respondInternalError(c, err, context)
	}
}

func (ic *InterestController) audit(c *gin.Context, userID uint, projectID *uint, action string, status entities.AuditStatus, actionErr error) {
	if ic.auditor == nil {
		return
	}

	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventInterest,
		Action:    action,
		ProjectID: projectID,
		IPAddress: c.ClientIP(),
		Status:    status,
	}
	if actionErr != nil {
		event.ErrorMsg = actionErr.Error()
	}

	// Audit failures must not break the request
	if err := ic.auditor.LogEvent(event); err != nil {
		log.Printf("Failed to log audit event (%s): %v", action, err)
	}
}
