package domain

import (
	"context"
	"time"
)

// Student represents a student account in the system.
// A student can report items, claim items, and take part in comment threads.
type Student struct {
	ID             int64     // Unique identifier
	Name           string    // Display name
	Email          string    // Login email (unique)
	Username       string    // Handle used for @mentions (unique)
	Password       string    // Bcrypt hashed password
	PhoneNumber    string    // Optional contact number
	ProfilePicture string    // Avatar URL
	CreatedAt      time.Time // Account creation timestamp
	UpdatedAt      time.Time // Last profile update timestamp
}

// StudentRepository defines the contract for student data persistence.
type StudentRepository interface {
	// GetByID retrieves a student by their ID.
	// Returns ErrNotFound if the student doesn't exist.
	GetByID(ctx context.Context, id int64) (Student, error)

	// GetByIDs retrieves students by the given IDs. Missing IDs are
	// simply absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Student, error)

	// GetByEmail retrieves a student by their email.
	// Used during login to verify credentials.
	GetByEmail(ctx context.Context, email string) (Student, error)

	// GetByUsername retrieves a student by their username.
	GetByUsername(ctx context.Context, username string) (Student, error)

	// GetByUsernames resolves a set of usernames. Unmatched names are
	// simply absent from the result, not an error.
	GetByUsernames(ctx context.Context, usernames []string) ([]Student, error)

	// Insert creates a new student account.
	// Backfills the ID in the provided Student upon success.
	Insert(ctx context.Context, s *Student) error

	// Update modifies an existing student's information.
	Update(ctx context.Context, s *Student) error

	// Delete removes a student account by ID.
	Delete(ctx context.Context, id int64) error

	// Fetch lists all students.
	Fetch(ctx context.Context) ([]Student, error)
}

// StudentCache caches display identities keyed by student ID.
type StudentCache interface {
	Get(ctx context.Context, id int64) (Student, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Student, error)
	Set(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id int64) error
}

// StudentUsecase defines the business logic contract for student accounts.
type StudentUsecase interface {
	// Register creates a new student account.
	// Returns ErrConflict if the email or username already exists.
	Register(ctx context.Context, s *Student) error

	// Login verifies credentials and returns a JWT token.
	// Returns ErrNotFound if the student doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, email, password string) (string, error)

	GetByID(ctx context.Context, id int64) (Student, error)
	Fetch(ctx context.Context) ([]Student, error)

	// Update edits profile fields. Only the account owner may update.
	Update(ctx context.Context, s *Student, requesterID int64) error

	// Delete removes an account. Only the account owner may delete.
	Delete(ctx context.Context, id int64, requesterID int64) error
}
