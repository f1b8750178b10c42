// Package project persists named network snapshots between editing sessions.
//
// A project is a snapshot plus identity: a uuid, a display name and an
// update timestamp. The [Store] interface abstracts the backend:
//   - file: JSON files in a config directory, for CLI use
//   - redis: shared store for a hosted editor instance
//   - mongo: durable store for a hosted editor instance
//
// All backends serialize the same document shape, so projects move between
// them by export/import.
package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/hydrotools/penstock/pkg/network"
)

// ErrNotFound is returned when a project does not exist.
var ErrNotFound = errors.New("project not found")

// Project is a persisted network snapshot with identity.
type Project struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name" bson:"name"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
	Snapshot  network.Snapshot `json:"snapshot" bson:"snapshot"`
}

// Summary is the listing view of a project, without the snapshot payload.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// New creates a project with a fresh uuid for the given snapshot.
func New(name string, snap network.Snapshot) *Project {
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		UpdatedAt: time.Now().UTC(),
		Snapshot:  snap,
	}
}

// Store is the interface for project persistence backends.
type Store interface {
	// Save stores or replaces a project and refreshes its UpdatedAt.
	Save(ctx context.Context, p *Project) error

	// Load retrieves a project by id.
	// Returns ErrNotFound if the project doesn't exist.
	Load(ctx context.Context, id string) (*Project, error)

	// List returns summaries of all stored projects.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a project. Deleting a missing project is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}
