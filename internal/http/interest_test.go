package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/satya0dev/getitdone/internal/auth"
	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/database/projects"
	"github.com/satya0dev/getitdone/internal/entities"
	"github.com/satya0dev/getitdone/internal/interest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	interest *interest.Service
	projects *projects.Repository
}

// setupEnv builds a router with the API routes and a middleware that
// authenticates requests as the user ID given in the X-Test-User header.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{}, &entities.Project{}, &entities.Interest{}, &entities.AuditEvent{},
	))

	var cfg config.Interest
	cfg.MaxActive = 5
	interestService := interest.NewService(db, cfg)
	projectRepo := projects.NewRepository(db)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if header := c.GetHeader("X-Test-User"); header != "" {
			var user entities.User
			if err := db.Where("email = ?", header).First(&user).Error; err == nil {
				c.Set(auth.ContextKeyUserID, user.ID)
				c.Set(auth.ContextKeyName, user.Name)
				c.Set(auth.ContextKeyRole, user.Role)
			}
		}
		c.Next()
	})

	projectsController := NewProjectsController(projectRepo, interestService)
	interestController := NewInterestController(interestService, nil)

	router.GET("/api/projects", projectsController.ListProjects)
	router.GET("/api/projects/:id", projectsController.GetProject)
	router.POST("/api/projects", projectsController.CreateProject)
	router.PATCH("/api/projects/:id/status", projectsController.UpdateStatus)
	router.POST("/api/projects/:id/approve", projectsController.ApproveFreelancer)
	router.POST("/api/projects/:id/interest", interestController.ExpressInterest)
	router.DELETE("/api/projects/:id/interest", interestController.WithdrawInterest)
	router.GET("/api/interests", interestController.ListInterests)
	router.GET("/api/projects/:id/interests", interestController.ListProjectInterests)

	return &testEnv{
		db:       db,
		router:   router,
		interest: interestService,
		projects: projectRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *entities.User {
	t.Helper()
	user := &entities.User{
		Name:  "Test Freelancer",
		Email: email,
		Role:  entities.UserRoleFreelancer,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createProject(t *testing.T, title string, status entities.ProjectStatus) *entities.Project {
	t.Helper()
	project := &entities.Project{
		Title:       title,
		Description: "Build the thing",
		Category:    "Web Development",
		Deadline:    time.Now().Add(14 * 24 * time.Hour),
		Status:      status,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) request(method, path, userEmail string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userEmail != "" {
		req.Header.Set("X-Test-User", userEmail)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestExpressInterest(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		user.Email,
		gin.H{"contact_number": "+15551234567"})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var record entities.Interest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, project.ID, record.ProjectID)
	assert.Equal(t, "+15551234567", record.ContactNumber)

	// Membership is visible from both sides
	freelancers, err := env.interest.InterestedFreelancers(project.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{user.ID}, freelancers)
}

func TestExpressInterest_Unauthenticated(t *testing.T) {
	env := setupEnv(t)
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		"",
		gin.H{"contact_number": "+15551234567"})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestExpressInterest_Duplicate(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	path := fmt.Sprintf("/api/projects/%d/interest", project.ID)
	body := gin.H{"contact_number": "+15551234567"}

	rr := env.request(http.MethodPost, path, user.Email, body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.request(http.MethodPost, path, user.Email, body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestExpressInterest_CapReached(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	body := gin.H{"contact_number": "+15551234567"}

	for i := 0; i < 5; i++ {
		project := env.createProject(t, fmt.Sprintf("Project %d", i), entities.ProjectStatusOpen)
		rr := env.request(http.MethodPost,
			fmt.Sprintf("/api/projects/%d/interest", project.ID), user.Email, body)
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	extra := env.createProject(t, "One too many", entities.ProjectStatusOpen)
	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", extra.ID), user.Email, body)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestExpressInterest_ProjectNotOpen(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Taken", entities.ProjectStatusInProgress)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		user.Email,
		gin.H{"contact_number": "+15551234567"})

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestExpressInterest_InvalidContact(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		user.Email,
		gin.H{"contact_number": "not-a-number"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExpressInterest_MissingContact(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		user.Email,
		gin.H{})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestExpressInterest_ReusesStoredContact(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	require.NoError(t, env.db.Model(user).Update("whats_app_number", "+15559876543").Error)
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)

	rr := env.request(http.MethodPost,
		fmt.Sprintf("/api/projects/%d/interest", project.ID),
		user.Email,
		gin.H{})

	require.Equal(t, http.StatusCreated, rr.Code)

	var record entities.Interest
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &record))
	assert.Equal(t, "+15559876543", record.ContactNumber)
}

func TestWithdrawInterest(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	project := env.createProject(t, "Landing page", entities.ProjectStatusOpen)
	path := fmt.Sprintf("/api/projects/%d/interest", project.ID)

	rr := env.request(http.MethodPost, path, user.Email, gin.H{"contact_number": "+15551234567"})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = env.request(http.MethodDelete, path, user.Email, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Withdrawing again conflicts
	rr = env.request(http.MethodDelete, path, user.Email, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestListInterests(t *testing.T) {
	env := setupEnv(t)
	user := env.createUser(t, "dev@example.com")
	first := env.createProject(t, "First", entities.ProjectStatusOpen)
	second := env.createProject(t, "Second", entities.ProjectStatusOpen)

	body := gin.H{"contact_number": "+15551234567"}
	require.Equal(t, http.StatusCreated,
		env.request(http.MethodPost, fmt.Sprintf("/api/projects/%d/interest", first.ID), user.Email, body).Code)
	require.Equal(t, http.StatusCreated,
		env.request(http.MethodPost, fmt.Sprintf("/api/projects/%d/interest", second.ID), user.Email, body).Code)

	rr := env.request(http.MethodGet, "/api/interests", user.Email, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Projects []entities.Project `json:"projects"`
		Count    int64              `json:"count"`
		MaxCount int                `json:"max_count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Count)
	assert.Equal(t, 5, resp.MaxCount)
	require.Len(t, resp.Projects, 2)
	assert.Equal(t, "First", resp.Projects[0].Title)
	assert.Equal(t, "Second", resp.Projects[1].Title)
}

func TestListProjectInterests(t *testing.T) {
	env := setupEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	project := env.createProject(t, "Contact List", entities.ProjectStatusOpen)

	require.Equal(t, http.StatusCreated,
		env.request(http.MethodPost, fmt.Sprintf("/api/projects/%d/interest", project.ID), alice.Email,
			gin.H{"contact_number": "+15551230001"}).Code)
	require.Equal(t, http.StatusCreated,
		env.request(http.MethodPost, fmt.Sprintf("/api/projects/%d/interest", project.ID), bob.Email,
			gin.H{"contact_number": "+15551230002"}).Code)

	rr := env.request(http.MethodGet, fmt.Sprintf("/api/projects/%d/interests", project.ID), "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Interests []interest.InterestDetail `json:"interests"`
		Count     int                       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Interests, 2)
	assert.Equal(t, alice.ID, resp.Interests[0].UserID)
	assert.Equal(t, "+15551230001", resp.Interests[0].ContactNumber)
	assert.Equal(t, alice.Email, resp.Interests[0].FreelancerEmail)
	assert.Equal(t, bob.ID, resp.Interests[1].UserID)
}
