// Package interest implements the interest relationship between freelancers
// and projects: expressing interest, withdrawing it, the per-user cap, and
// the contact-number capture that goes with a first interest.
//
// Both membership views (a user's interested projects and a project's
// interested freelancers) are derived from a single interests table, and
// every mutation runs in one database transaction, so the two views cannot
// drift apart through partial writes or concurrent sessions.
package interest

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/database/interests"
	"github.com/satya0dev/getitdone/internal/entities"
)

// contactPattern accepts E.164-style numbers with an optional leading plus.
var contactPattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrProjectNotOpen     = errors.New("project is not open for interest")
	ErrAlreadyInterested  = errors.New("interest already expressed for this project")
	ErrNotInterested      = errors.New("no interest expressed for this project")
	ErrInterestCapReached = errors.New("active interest limit reached")
	ErrContactRequired    = errors.New("a WhatsApp number is required to express interest")
	ErrInvalidContact     = errors.New("invalid WhatsApp number")
)

// ValidateContactNumber checks a WhatsApp-number-like string.
func ValidateContactNumber(number string) error {
	if !contactPattern.MatchString(number) {
		return ErrInvalidContact
	}
	return nil
}

// Service keeps the user/project interest relationship consistent and
// enforces the per-user active-interest cap.
type Service struct {
	db        *gorm.DB
	maxActive int
}

// NewService creates a new interest service.
func NewService(db *gorm.DB, cfg config.Interest) *Service {
	maxActive := cfg.MaxActive
	if maxActive <= 0 {
		maxActive = config.DefaultInterestCap
	}
	return &Service{db: db, maxActive: maxActive}
}

// Cap returns the configured per-user active-interest limit.
func (s *Service) Cap() int {
	return s.maxActive
}

// ExpressInterest records that a user wants to work on a project.
//
// The project must be open, the user must not already be interested, and
// the user must hold fewer than Cap active interests. A contact number
// supplied here is stored on the user for reuse; when none is supplied the
// previously stored number is used. The interest row and any contact-number
// update are committed in a single transaction, so either both records
// reflect the new relationship or neither does.
func (s *Service) ExpressInterest(userID, projectID uint, contactNumber string) (*entities.Interest, error) {
	if contactNumber != "" {
		if err := ValidateContactNumber(contactNumber); err != nil {
			return nil, err
		}
	}

	var row *entities.Interest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to load user: %w", err)
		}

		var project entities.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to load project: %w", err)
		}
		if project.Status != entities.ProjectStatusOpen {
			return ErrProjectNotOpen
		}

		repo := interests.NewRepository(tx)
		exists, err := repo.Exists(userID, projectID)
		if err != nil {
			return fmt.Errorf("failed to check existing interest: %w", err)
		}
		if exists {
			return ErrAlreadyInterested
		}

		count, err := repo.CountByUser(userID)
		if err != nil {
			return fmt.Errorf("failed to count active interests: %w", err)
		}
		if count >= int64(s.maxActive) {
			return ErrInterestCapReached
		}

		// Captured once, reused on later interests. An explicit new value
		// overwrites the stored number.
		number := contactNumber
		if number == "" {
			number = user.WhatsAppNumber
		}
		if number == "" {
			return ErrContactRequired
		}

		row = &entities.Interest{
			UserID:        userID,
			ProjectID:     projectID,
			ContactNumber: number,
		}
		if err := repo.Create(row); err != nil {
			return fmt.Errorf("failed to record interest: %w", err)
		}

		if contactNumber != "" && contactNumber != user.WhatsAppNumber {
			err := tx.Model(&entities.User{}).Where("id = ?", userID).
				Update("whats_app_number", contactNumber).Error
			if err != nil {
				return fmt.Errorf("failed to store contact number: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// WithdrawInterest removes an existing interest relationship. Both derived
// membership views return to their pre-interest state.
func (s *Service) WithdrawInterest(userID, projectID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		removed, err := interests.NewRepository(tx).Delete(userID, projectID)
		if err != nil {
			return fmt.Errorf("failed to withdraw interest: %w", err)
		}
		if removed == 0 {
			return ErrNotInterested
		}
		return nil
	})
}

// IsInterested reports whether the relationship currently holds.
func (s *Service) IsInterested(userID, projectID uint) (bool, error) {
	return interests.NewRepository(s.db).Exists(userID, projectID)
}

// ActiveInterestCount returns how many active interests a user holds.
func (s *Service) ActiveInterestCount(userID uint) (int64, error) {
	return interests.NewRepository(s.db).CountByUser(userID)
}

// InterestedProjects returns the derived interested_projects view for a user.
func (s *Service) InterestedProjects(userID uint) ([]uint, error) {
	return interests.NewRepository(s.db).ProjectIDsByUser(userID)
}

// InterestedFreelancers returns the derived interested_freelancers view for
// a project.
func (s *Service) InterestedFreelancers(projectID uint) ([]uint, error) {
	return interests.NewRepository(s.db).UserIDsByProject(projectID)
}

// InterestDetail pairs an interest row with the freelancer behind it, for
// the project owner's contact list.
type InterestDetail struct {
	entities.Interest
	FreelancerName  string `json:"freelancer_name"`
	FreelancerEmail string `json:"freelancer_email"`
}

// ProjectInterests returns the freelancers interested in a project with
// their contact numbers, oldest expression first.
func (s *Service) ProjectInterests(projectID uint) ([]InterestDetail, error) {
	rows, err := interests.NewRepository(s.db).ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}

	var users []entities.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entities.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]InterestDetail, 0, len(rows))
	for _, row := range rows {
		detail := InterestDetail{Interest: row}
		if u, ok := byID[row.UserID]; ok {
			detail.FreelancerName = u.Name
			detail.FreelancerEmail = u.Email
		}
		details = append(details, detail)
	}
	return details, nil
}

// ListInterests returns the projects a user currently holds interest in,
// oldest first.
func (s *Service) ListInterests(userID uint) ([]entities.Project, error) {
	rows, err := interests.NewRepository(s.db).ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProjectID)
	}

	var projects []entities.Project
	if err := s.db.Where("id IN ?", ids).Find(&projects).Error; err != nil {
		return nil, err
	}

	// Preserve express order.
	byID := make(map[uint]entities.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	ordered := make([]entities.Project, 0, len(projects))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
