// Package projects provides database operations for project management.
package projects

import (
	"time"

	"gorm.io/gorm"

	"github.com/satya0dev/getitdone/internal/entities"
)

// Repository handles all project database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new projects repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateProject persists a new project.
func (r *Repository) CreateProject(project *entities.Project) error {
	if project.Status == "" {
		project.Status = entities.ProjectStatusOpen
	}
	return r.db.Create(project).Error
}

// GetProjectByID retrieves a project by ID.
func (r *Repository) GetProjectByID(id uint) (*entities.Project, error) {
	var project entities.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetOpenProjects returns all open projects, newest first.
func (r *Repository) GetOpenProjects(limit, offset int) ([]entities.Project, int64, error) {
	var projects []entities.Project
	var total int64

	query := r.db.Model(&entities.Project{}).Where("status = ?", entities.ProjectStatusOpen)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&projects).Error
	return projects, total, err
}

// UpdateStatus transitions a project to a new lifecycle state.
func (r *Repository) UpdateStatus(projectID uint, status entities.ProjectStatus) error {
	result := r.db.Model(&entities.Project{}).Where("id = ?", projectID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApproveFreelancer records the freelancer chosen for a project and moves
// the project to In Progress.
func (r *Repository) ApproveFreelancer(projectID, freelancerID uint) error {
	result := r.db.Model(&entities.Project{}).Where("id = ?", projectID).
		Updates(map[string]any{
			"approved_freelancer_id": freelancerID,
			"status":                 entities.ProjectStatusInProgress,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseExpired moves open projects whose deadline has passed out of the
// Open state so they stop accepting interest. Projects without a deadline
// are left alone. Returns the number of projects transitioned.
func (r *Repository) CloseExpired(now time.Time) (int64, error) {
	var noDeadline time.Time
	result := r.db.Model(&entities.Project{}).
		Where("status = ? AND deadline > ? AND deadline < ?", entities.ProjectStatusOpen, noDeadline, now).
		Update("status", entities.ProjectStatusCompleted)
	return result.RowsAffected, result.Error
}
