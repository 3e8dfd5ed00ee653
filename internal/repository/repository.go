package repository

import (
	"context" // Standard for request-scoped deadlines, cancellation signals, etc.
	"strings"
	"wellness-admin/internal/domain" // Import our defined domain models

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer (optional but good practice)
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	// Add more specific errors as needed
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// IsPermissionDenied reports whether err looks like a store-side permission
// failure. The driver surfaces these only as message text ("not authorized",
// "(Unauthorized) ... requires authentication"), so a substring match is the
// best available signal. Policy upstream treats any such failure as an
// expired session and redirects to sign-in.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "not authorized") ||
		strings.Contains(msg, "Unauthorized") ||
		strings.Contains(msg, "requires authentication")
}

// ExerciseRepository defines the interface for interacting with exercise data.
type ExerciseRepository interface {
	// CreateShell allocates an empty document and returns its id. Uploads are
	// namespaced under this id before the record has any content.
	CreateShell(ctx context.Context) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// List returns all exercises, newest first (createdAt descending).
	List(ctx context.Context) ([]domain.Exercise, error)
	// Update $set-merges the content fields into the document; it never
	// replaces the document and never touches createdAt.
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TagRepository defines the interface for interacting with tag data.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CategoryRepository defines the interface for interacting with category data.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	UpdateLabel(ctx context.Context, id primitive.ObjectID, label string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StatsRepository defines the interface for interacting with usage counters.
type StatsRepository interface {
	// CreateWithID inserts a zero-valued counters document keyed by the
	// exercise id.
	CreateWithID(ctx context.Context, id primitive.ObjectID) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Stats, error)
	Update(ctx context.Context, stats *domain.Stats) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for interacting with admin accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}
