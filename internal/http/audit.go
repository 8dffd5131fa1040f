package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/entities"
)

// AuditLog exposes the recorded audit trail. Satisfied by the audit
// repository when auditing is enabled.
type AuditLog interface {
	GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error)
}

type AuditController struct {
	log AuditLog
}

func NewAuditController(log AuditLog) *AuditController {
	return &AuditController{log: log}
}

// ListEvents returns recorded audit events, newest first, optionally
// filtered to one user. Admin only.
// GET /api/audit?user_id=&limit=&offset=
func (ac *AuditController) ListEvents(c *gin.Context) {
	limit, offset := parsePagination(c, 50, 200)

	var userID uint
	if idStr := c.Query("user_id"); idStr != "" {
		id, ok := parseIDParamValue(idStr)
		if !ok {
			respondBadRequest(c, "invalid user_id")
			return
		}
		userID = id
	}

	events, total, err := ac.log.GetEvents(userID, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    events,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(events)) < total,
	})
}
