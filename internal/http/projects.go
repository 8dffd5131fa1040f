package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satya0dev/getitdone/internal/entities"
	"github.com/satya0dev/getitdone/internal/interest"
)

// ProjectStore defines database operations for project management.
type ProjectStore interface {
	CreateProject(project *entities.Project) error
	GetProjectByID(id uint) (*entities.Project, error)
	GetOpenProjects(limit, offset int) ([]entities.Project, int64, error)
	UpdateStatus(projectID uint, status entities.ProjectStatus) error
	ApproveFreelancer(projectID, freelancerID uint) error
}

type ProjectsController struct {
	store    ProjectStore
	interest *interest.Service
}

func NewProjectsController(store ProjectStore, interestService *interest.Service) *ProjectsController {
	return &ProjectsController{
		store:    store,
		interest: interestService,
	}
}

// projectView is the JSON shape returned for project listings. It carries
// the viewer-dependent interest flag next to the project itself.
type projectView struct {
	entities.Project
	InterestedCount  int  `json:"interested_count"`
	ViewerInterested bool `json:"viewer_interested"`
}

func (pc *ProjectsController) buildView(project entities.Project, viewerID uint) (projectView, error) {
	freelancers, err := pc.interest.InterestedFreelancers(project.ID)
	if err != nil {
		return projectView{}, err
	}

	view := projectView{
		Project:         project,
		InterestedCount: len(freelancers),
	}
	for _, id := range freelancers {
		if id == viewerID {
			view.ViewerInterested = true
			break
		}
	}
	return view, nil
}

// ListProjects returns open projects, newest first, with pagination.
// GET /api/projects
func (pc *ProjectsController) ListProjects(c *gin.Context) {
	limit, offset := parsePagination(c, 20, 100)

	projects, total, err := pc.store.GetOpenProjects(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list projects")
		return
	}

	viewerID := GetUserID(c)
	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		view, err := pc.buildView(project, viewerID)
		if err != nil {
			respondInternalError(c, err, "list projects")
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:    views,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(views)) < total,
	})
}

// GetProject returns a single project.
// GET /api/projects/:id
func (pc *ProjectsController) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := pc.store.GetProjectByID(id)
	if err != nil {
		respondNotFound(c, "project")
		return
	}

	view, err := pc.buildView(*project, GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get project")
		return
	}

	c.JSON(http.StatusOK, view)
}

type createProjectRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     string  `json:"description" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	DifficultyLevel string  `json:"difficulty_level"`
	EstimatedPrice  float64 `json:"estimated_price"`
	Deadline        string  `json:"deadline"` // RFC 3339 or YYYY-MM-DD
	DriveLink       string  `json:"drive_link"`
}

func parseDeadline(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// CreateProject creates a new open project. Admin only.
// POST /api/projects
func (pc *ProjectsController) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title, description and category are required")
		return
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondBadRequest(c, "invalid deadline format")
		return
	}

	project := &entities.Project{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		DifficultyLevel: req.DifficultyLevel,
		EstimatedPrice:  req.EstimatedPrice,
		Deadline:        deadline,
		DriveLink:       req.DriveLink,
		Status:          entities.ProjectStatusOpen,
	}

	if err := pc.store.CreateProject(project); err != nil {
		respondInternalError(c, err, "create project")
		return
	}

	respondCreated(c, project)
}

type updateStatusRequest struct {
	Status entities.ProjectStatus `json:"status" binding:"required"`
}

var validStatuses = map[entities.ProjectStatus]bool{
	entities.ProjectStatusOpen:       true,
	entities.ProjectStatusInProgress: true,
	entities.ProjectStatusCompleted:  true,
}

// UpdateStatus transitions a project's lifecycle state. Admin only.
// PATCH /api/projects/:id/status
func (pc *ProjectsController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	if !validStatuses[req.Status] {
		respondBadRequest(c, "invalid status")
		return
	}

	if _, err := pc.store.GetProjectByID(id); err != nil {
		respondNotFound(c, "project")
		return
	}

	if err := pc.store.UpdateStatus(id, req.Status); err != nil {
		respondInternalError(c, err, "update project status")
		return
	}

	respondSuccess(c, "project status updated")
}

type approveRequest struct {
	FreelancerID uint `json:"freelancer_id" binding:"required"`
}

// ApproveFreelancer picks one of the interested freelancers and moves the
// project to In Progress. Admin only.
// POST /api/projects/:id/approve
func (pc *ProjectsController) ApproveFreelancer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "freelancer_id is required")
		return
	}

	project, err := pc.store.GetProjectByID(id)
	if err != nil {
		respondNotFound(c, "project")
		return
	}

	if project.Status != entities.ProjectStatusOpen {
		respondError(c, http.StatusConflict, "project is not open")
		return
	}

	// Only a freelancer who expressed interest can be approved
	interested, err := pc.interest.IsInterested(req.FreelancerID, id)
	if err != nil {
		respondInternalError(c, err, "approve freelancer")
		return
	}
	if !interested {
		respondError(c, http.StatusUnprocessableEntity, "freelancer has not expressed interest in this project")
		return
	}

	if err := pc.store.ApproveFreelancer(id, req.FreelancerID); err != nil {
		respondInternalError(c, err, "approve freelancer")
		return
	}

	respondSuccess(c, "freelancer approved")
}
