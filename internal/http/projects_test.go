package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satya0dev/getitdone/internal/entities"
)

func TestListProjects(t *testing.T) {
	env := setupEnv(t)
	env.createProject(t, "Older", entities.ProjectStatusOpen)
	env.createProject(t, "Newer", entities.ProjectStatusOpen)
	env.createProject(t, "Taken", entities.ProjectStatusInProgress)

	rr := env.request(http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data  []projectView `json:"data"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	// Only open projects, newest first
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Newer", resp.Data[0].Title)
	assert.Equal(t, "Older", resp.Data[1].Title)
}

func TestListProjects_ViewerInterestFlag(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	_, err := env.interest.ExpressInterest(user.ID, project.ID, "+15551234567")
	require.NoError(t, err)

	rr := env.request(http.MethodGet, "/api/projects", user.Email, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data []projectView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].ViewerInterested)
	assert.Equal(t, 1, resp.Data[0].InterestedCount)

	// Anonymous viewers see the count but no flag
	rr = env.request(http.MethodGet, "/api/projects", "", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.False(t, resp.Data[0].ViewerInterested)
	assert.Equal(t, 1, resp.Data[0].InterestedCount)
}

func TestGetProject(t *testing.T) {
	env := setupEnv(t)
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodGet, fmt.Sprintf("/api/projects/%d", project.ID), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view projectView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, "Landing page", view.Title)
}

func TestGetProject_NotFound(t *testing.T) {
	env := setupEnv(t)

	rr := env.request(http.MethodGet, "/api/projects/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetProject_InvalidID(t *testing.T) {
	env := setupEnv(t)

	rr := env.request(http.MethodGet, "/api/projects/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateProject(t *testing.T) {
	env := setupEnv(t)

	rr := env.request(http.MethodPost, "/api/projects", "", gin.H{
		"title":           "New build",
		"description":     "Ship a storefront",
		"category":        "Web Development",
		"estimated_price": 450.0,
		"deadline":        "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var project entities.Project
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &project))
	assert.Equal(t, entities.ProjectStatusOpen, project.Status)
	assert.NotZero(t, project.ID)
	assert.Equal(t, 2026, project.Deadline.Year())
}

func TestCreateProject_MissingFields(t *testing.T) {
	env := setupEnv(t)

	rr := env.request(http.MethodPost, "/api/projects", "", gin.H{
		"title": "No description",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus(t *testing.T) {
	env := setupEnv(t)
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPatch,
		fmt.Sprintf("/api/projects/%d/status", project.ID), "",
		gin.H{"status": "Completed"})
	require.Equal(t, http.StatusOK, rr.Code)

	updated, err := env.projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ProjectStatusCompleted, updated.Status)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	env := setupEnv(t)
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPatch,
		fmt.Sprintf("/api/projects/%d/status", project.ID), "",
		gin.H{"status": "Cancelled"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestApproveFreelancer(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	_, err := env.interest.ExpressInterest(user.ID, project.ID, "+15551234567")
	require.NoError(t, err)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/approve", project.ID), "",
		gin.H{"freelancer_id": user.ID})
	require.Equal(t, http.StatusOK, rr.Code)

	updated, err := env.projects.GetProjectByID(project.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.ProjectStatusInProgress, updated.Status)
	require.NotNil(t, updated.ApprovedFreelancerID)
	assert.Equal(t, user.ID, *updated.ApprovedFreelancerID)
}

func TestApproveFreelancer_NotInterested(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/approve", project.ID), "",
		gin.H{"freelancer_id": user.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestApproveFreelancer_NotOpen(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusCompleted)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/approve", project.ID), "",
		gin.H{"freelancer_id": user.ID})
	assert.Equal(t, http.StatusConflict, rr.Code)
}
