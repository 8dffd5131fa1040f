package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/database"
	"github.com/satya0dev/getitdone/internal/database/projects"
	"github.com/satya0dev/getitdone/internal/entities"
)

// CreateProjectCommand posts a new project from the command line, useful for
// seeding a fresh install before the admin web flow is set up.
type CreateProjectCommand struct {
	Title       string
	Description string
	Category    string
	Difficulty  string
	Price       float64
	Deadline    string
	DriveLink   string
	DBPath      string
}

// NewCreateProjectCommand creates a new CreateProjectCommand
func NewCreateProjectCommand() *CreateProjectCommand {
	return &CreateProjectCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateProjectCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-project", flag.ExitOnError)

	cfg := config.NewConfig()

	fs.StringVar(&cmd.Title, "title", "", "Project title")
	fs.StringVar(&cmd.Description, "description", "", "Project description")
	fs.StringVar(&cmd.Category, "category", "", "Project category (e.g. Web Development)")
	fs.StringVar(&cmd.Difficulty, "difficulty", "", "Difficulty level (optional)")
	fs.Float64Var(&cmd.Price, "price", 0, "Estimated price (optional)")
	fs.StringVar(&cmd.Deadline, "deadline", "", "Deadline as YYYY-MM-DD (optional)")
	fs.StringVar(&cmd.DriveLink, "drive-link", "", "Link to the project brief (optional)")
	fs.StringVar(&cmd.DBPath, "db", cfg.Database.Path, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-project [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an open project directly in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-project -title \"Landing page\" -description \"...\" -category \"Web Development\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-project -title \"Logo\" -description \"...\" -category Design -deadline 2026-10-01\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Title == "" || cmd.Description == "" || cmd.Category == "" {
		fs.Usage()
		return fmt.Errorf("-title, -description and -category are required")
	}

	return nil
}

// Run executes the create-project command
func (cmd *CreateProjectCommand) Run() error {
	fmt.Println("📋 Create Project")
	fmt.Println("=================")

	var deadline time.Time
	if cmd.Deadline != "" {
		var err error
		deadline, err = time.Parse("2006-01-02", cmd.Deadline)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: expected YYYY-MM-DD", cmd.Deadline)
		}
	}

	db, err := database.NewDatabase(cmd.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := projects.NewRepository(db.DB)

	project := &entities.Project{
		Title:           cmd.Title,
		Description:     cmd.Description,
		Category:        cmd.Category,
		DifficultyLevel: cmd.Difficulty,
		EstimatedPrice:  cmd.Price,
		Deadline:        deadline,
		DriveLink:       cmd.DriveLink,
		Status:          entities.ProjectStatusOpen,
	}

	if err := repo.CreateProject(project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✅ Created project #%d: %s [%s]\n", project.ID, project.Title, project.Category)
	if !deadline.IsZero() {
		fmt.Printf("📅 Deadline: %s\n", deadline.Format("2006-01-02"))
	}
	return nil
}
