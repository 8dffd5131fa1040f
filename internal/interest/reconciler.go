package interest

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/satya0dev/getitdone/internal/database/interests"
	"github.com/satya0dev/getitdone/internal/entities"
)

// Report summarizes one reconciliation sweep.
type Report struct {
	RowsChecked    int64
	OrphansRemoved int
	CapViolations  int
}

// Reconciler sweeps the interests table for rows that should not exist:
// rows referencing deleted users or projects, and users holding more
// interests than the cap allows (possible after the cap is lowered).
// Orphans are removed; cap violations are reported but left alone since
// dropping a user's interest silently would be worse than the overshoot.
type Reconciler struct {
	db        *gorm.DB
	maxActive int
}

// NewReconciler creates a reconciler using the same cap as the service.
func NewReconciler(db *gorm.DB, svc *Service) *Reconciler {
	return &Reconciler{db: db, maxActive: svc.Cap()}
}

// Run performs a full sweep and returns what it found.
func (r *Reconciler) Run() (*Report, error) {
	report := &Report{}
	repo := interests.NewRepository(r.db)

	if err := r.db.Model(&entities.Interest{}).Count(&report.RowsChecked).Error; err != nil {
		return nil, fmt.Errorf("failed to count interest rows: %w", err)
	}

	orphans, err := repo.OrphanedRows()
	if err != nil {
		return nil, fmt.Errorf("failed to find orphaned interests: %w", err)
	}
	for _, row := range orphans {
		if err := repo.DeleteRow(row.ID); err != nil {
			return nil, fmt.Errorf("failed to remove orphaned interest %d: %w", row.ID, err)
		}
		log.Printf("Reconciler: removed orphaned interest row %d (user=%d, project=%d)",
			row.ID, row.UserID, row.ProjectID)
		report.OrphansRemoved++
	}

	overCap, err := r.usersOverCap()
	if err != nil {
		return nil, err
	}
	for _, userID := range overCap {
		log.Printf("Reconciler: user %d holds more than %d active interests", userID, r.maxActive)
	}
	report.CapViolations = len(overCap)

	return report, nil
}

// usersOverCap returns users holding more active interests than allowed.
func (r *Reconciler) usersOverCap() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Interest{}).
		Select("user_id").
		Group("user_id").
		Having("COUNT(*) > ?", r.maxActive).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users over cap: %w", err)
	}
	return ids, nil
}
