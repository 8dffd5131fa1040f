package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesController renders the server-side pages: the project board, the
// project detail view and the static marketing pages.
type PagesController struct {
	store    ProjectStore
	projects *ProjectsController
}

func NewPagesController(store ProjectStore, projectsController *ProjectsController) *PagesController {
	return &PagesController{
		store:    store,
		projects: projectsController,
	}
}

// HomePage renders the open project board.
// GET /
func (pc *PagesController) HomePage(c *gin.Context) {
	projects, total, err := pc.store.GetOpenProjects(50, 0)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading projects: %s", err.Error())
		return
	}

	viewerID := GetUserID(c)
	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		view, err := pc.projects.buildView(project, viewerID)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error loading projects: %s", err.Error())
			return
		}
		views = append(views, view)
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"Projects":      views,
		"TotalProjects": total,
		"Auth":          GetAuthTemplateData(c),
	})
}

// ProjectPage renders a single project's detail view.
// GET /projects/:id
func (pc *PagesController) ProjectPage(c *gin.Context) {
	idStr := c.Param("id")
	id, ok := parseIDParamValue(idStr)
	if !ok {
		c.String(http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := pc.store.GetProjectByID(id)
	if err != nil {
		c.String(http.StatusNotFound, "Project not found")
		return
	}

	view, err := pc.projects.buildView(*project, GetUserID(c))
	if err != nil {
		c.String(http.StatusInternalServerError, "Error loading project: %s", err.Error())
		return
	}

	c.HTML(http.StatusOK, "project", gin.H{
		"Project": view,
		"Auth":    GetAuthTemplateData(c),
	})
}

// Static pages. Each renders a template of the same name.

func (pc *PagesController) AboutPage(c *gin.Context) {
	pc.renderStatic(c, "about")
}

func (pc *PagesController) PrivacyPage(c *gin.Context) {
	pc.renderStatic(c, "privacy")
}

func (pc *PagesController) TermsPage(c *gin.Context) {
	pc.renderStatic(c, "terms")
}

// HostProjectsPage explains how clients get their projects listed.
func (pc *PagesController) HostProjectsPage(c *gin.Context) {
	pc.renderStatic(c, "host-projects")
}

func (pc *PagesController) renderStatic(c *gin.Context, name string) {
	c.HTML(http.StatusOK, name, gin.H{
		"Auth": GetAuthTemplateData(c),
	})
}
