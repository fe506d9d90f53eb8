package models

import (
	"context"
	"time"
)

// Model defines the base interface for all persistent entities in the songblog service.
// Implementations include [User], [Blog], and [Comment].
type Model interface {
	Key() string        // Key returns the unique identifier for this entity
	Created() time.Time // Created returns when this entity was created
	Validate() error    // Validate checks if the entity's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific entity types.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error     // Create inserts a new entity into the database
	Get(ctx context.Context, id string) (T, error) // Get retrieves an entity by its ID
	Update(ctx context.Context, model T) error     // Update modifies an existing entity in the database
	Delete(ctx context.Context, id string) error   // Delete removes an entity from the database by its ID
}
