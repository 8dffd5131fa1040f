package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/satya0dev/getitdone/internal/auth"
	"github.com/satya0dev/getitdone/internal/config"
	"github.com/satya0dev/getitdone/internal/database"
	"github.com/satya0dev/getitdone/internal/entities"
)

// CreateUserCommand creates a user account from the command line. It is the
// way the first administrator account gets bootstrapped, since signup through
// the web UI only produces freelancer accounts.
type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     string
	DBPath   string
}

// NewCreateUserCommand creates a new CreateUserCommand
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	cfg := config.NewConfig()

	fs.StringVar(&cmd.Name, "name", "", "Display name for the account")
	fs.StringVar(&cmd.Email, "email", "", "Email address (used to log in)")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted interactively if omitted)")
	fs.StringVar(&cmd.Role, "role", string(entities.UserRoleAdmin), "Account role: admin or freelancer")
	fs.StringVar(&cmd.DBPath, "db", cfg.Database.Path, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a user account directly in the database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s create-user -name \"Satya\" -email satya@example.com\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s create-user -name \"Jane\" -email jane@example.com -role freelancer\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Name == "" || cmd.Email == "" {
		fs.Usage()
		return fmt.Errorf("both -name and -email are required")
	}

	role := entities.UserRole(cmd.Role)
	if role != entities.UserRoleAdmin && role != entities.UserRoleFreelancer {
		return fmt.Errorf("invalid role %q: must be admin or freelancer", cmd.Role)
	}

	return nil
}

// Run executes the create-user command
func (cmd *CreateUserCommand) Run() error {
	fmt.Println("👤 Create User")
	fmt.Println("==============")

	password := cmd.Password
	if password == "" {
		var err error
		password, err = promptPassword()
		if err != nil {
			return err
		}
	}

	cfg := config.NewConfig()

	db, err := database.NewDatabase(cmd.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.CreateUser(cmd.Name, cmd.Email, password, entities.UserRole(cmd.Role))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("✅ Created %s account #%d (%s)\n", user.Role, user.ID, user.Email)
	return nil
}

func promptPassword() (string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password = strings.TrimRight(password, "\r\n")

	fmt.Print("Confirm password: ")
	confirm, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}
	confirm = strings.TrimRight(confirm, "\r\n")

	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}

	return password, nil
}
