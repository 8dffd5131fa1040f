// Package interests provides database operations for the user/project
// interest relationship.
//
// The relationship is stored once, as rows in the interests table keyed by
// (user_id, project_id). The membership lists exposed on users and projects
// are derived from these rows, which keeps both sides of the relationship
// consistent without multi-record writes.
package interests

import (
	"gorm.io/gorm"

	"github.com/satya0dev/getitdone/internal/entities"
)

// Repository handles all interest database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new interests repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an interest row. The unique (user_id, project_id) index
// rejects duplicates at the database level.
func (r *Repository) Create(interest *entities.Interest) error {
	return r.db.Create(interest).Error
}

// Delete removes the interest row for a (user, project) pair. Returns the
// number of rows removed.
func (r *Repository) Delete(userID, projectID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(&entities.Interest{})
	return result.RowsAffected, result.Error
}

// Exists reports whether the relationship currently holds.
func (r *Repository) Exists(userID, projectID uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Interest{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	return count > 0, err
}

// CountByUser returns the number of active interests a user holds.
func (r *Repository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Interest{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ProjectIDsByUser returns the derived interested_projects view for a user.
func (r *Repository) ProjectIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Interest{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("project_id", &ids).Error
	return ids, err
}

// UserIDsByProject returns the derived interested_freelancers view for a project.
func (r *Repository) UserIDsByProject(projectID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.Interest{}).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// ListByUser returns a user's interest rows with their projects preloaded.
func (r *Repository) ListByUser(userID uint) ([]entities.Interest, error) {
	var rows []entities.Interest
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// ListByProject returns a project's interest rows.
func (r *Repository) ListByProject(projectID uint) ([]entities.Interest, error) {
	var rows []entities.Interest
	err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// OrphanedRows returns interest rows that reference a missing user or
// project. Used by the reconciliation sweep.
func (r *Repository) OrphanedRows() ([]entities.Interest, error) {
	var rows []entities.Interest
	err := r.db.
		Where("user_id NOT IN (?)", r.db.Model(&entities.User{}).Select("id")).
		Or("project_id NOT IN (?)", r.db.Model(&entities.Project{}).Select("id")).
		Find(&rows).Error
	return rows, err
}

// DeleteRow removes a single interest row by primary key.
func (r *Repository) DeleteRow(id uint) error {
	return r.db.Delete(&entities.Interest{}, id).Error
}
