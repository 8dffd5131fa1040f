package interest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/entities"
)

func TestReconciler_CleanState(t *testing.T) {
	db, svc, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "u1@example.com")
	project := createTestProject(t, db, "First", entities.ProjectStatusOpen)
	_, err := svc.ExpressInterest(user.ID, project.ID, "+15551234567")
	require.NoError(t, err)

	report, err := NewReconciler(db, svc).Run()
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.RowsChecked)
	assert.Zero(t, report.OrphansRemoved)
	assert.Zero(t, report.CapViolations)
}

func TestReconciler_RemovesOrphans(t *testing.T) {
	db, svc, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "u1@example.com")
	project := createTestProject(t, db, "First", entities.ProjectStatusOpen)
	_, err := svc.ExpressInterest(user.ID, project.ID, "+15551234567")
	require.NoError(t, err)

	// A row surviving its project is the partial-application failure mode
	// the sweep exists to repair.
	require.NoError(t, db.Delete(&entities.Project{}, project.ID).Error)

	report, err := NewReconciler(db, svc).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, report.OrphansRemoved)

	var count int64
	db.Model(&entities.Interest{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestReconciler_ReportsCapViolations(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	svc := NewService(db, config.Interest{MaxActive: 5})
	user := createTestUser(t, db, "u1@example.com")
	for i := 0; i < 4; i++ {
		p := createTestProject(t, db, fmt.Sprintf("Project %d", i), entities.ProjectStatusOpen)
		_, err := svc.ExpressInterest(user.ID, p.ID, "+15551234567")
		require.NoError(t, err)
	}

	// Lowering the cap leaves existing holdings over the limit. The sweep
	// reports them but does not drop anything.
	lowered := NewService(db, config.Interest{MaxActive: 2})
	report, err := NewReconciler(db, lowered).Run()
	require.NoError(t, err)
	assert.Equal(t, 1, report.CapViolations)

	var count int64
	db.Model(&entities.Interest{}).Count(&count)
	assert.Equal(t, int64(4), count)
}
