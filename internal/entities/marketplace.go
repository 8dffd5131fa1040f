package entities

import (
	"time"

	"gorm.io/gorm"
)

// UserRole determines what a user is allowed to do.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"      // Can create projects and approve freelancers
	UserRoleFreelancer UserRole = "freelancer" // Can browse projects and express interest
)

// ProjectStatus is the lifecycle state of a project.
// Only Open projects accept new interest.
type ProjectStatus string

const (
	ProjectStatusOpen       ProjectStatus = "Open"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

type User struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	Name           string   `gorm:"size:100" json:"name"`
	Email          string   `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash   string   `gorm:"size:255" json:"-"`
	Role           UserRole `gorm:"size:20;default:freelancer" json:"role"`
	WhatsAppNumber string   `gorm:"size:20" json:"whatsapp_number,omitempty"`

	// Set for accounts created through an OAuth provider.
	OAuthProvider  string `gorm:"size:32" json:"-"`
	OAuthAccountID string `gorm:"index;size:128" json:"-"`

	FailedLoginCount int        `json:"-"`
	LockedUntil      *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Interests []Interest `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Project struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	Title           string        `gorm:"index;size:256" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	Category        string        `gorm:"index;size:100" json:"category"`
	DifficultyLevel string        `gorm:"size:50" json:"difficulty_level,omitempty"`
	EstimatedPrice  float64       `json:"estimated_price"`
	Deadline        time.Time     `json:"deadline"`
	DriveLink       string        `gorm:"size:2048" json:"drive_link,omitempty"`
	Status          ProjectStatus `gorm:"index;size:20;default:Open" json:"status"`

	// The freelancer picked by the project owner, if any.
	ApprovedFreelancerID *uint `json:"approved_freelancer,omitempty"`

	Interests []Interest `gorm:"foreignKey:ProjectID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Interest is the single source of truth for the user/project interest
// relationship. The per-user and per-project membership lists exposed by the
// API are derived views over these rows, so both sides always agree.
type Interest struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"index;uniqueIndex:idx_interests_user_project" json:"user_id"`
	ProjectID uint `gorm:"index;uniqueIndex:idx_interests_user_project" json:"project_id"`

	// Contact number the user supplied (or had stored) at express time.
	ContactNumber string `gorm:"size:20" json:"contact_number"`

	CreatedAt time.Time `json:"created_at"`
}
