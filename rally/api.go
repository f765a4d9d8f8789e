package rally

import (
	"context"
)

// API defines the interface for Rally operations
type API interface {
	// Me returns the reference of the authenticated user
	Me() string

	// SetWorkspace scopes subsequent requests to a workspace
	SetWorkspace(ref string)

	// Find returns every object of typeName matching query
	Find(ctx context.Context, typeName, query string, opts ...FindOption) ([]Object, error)

	// Get retrieves a single object
	Get(ctx context.Context, typeName, id string) (Object, error)

	// Create creates an object and returns it
	Create(ctx context.Context, typeName string, fields map[string]any) (Object, error)

	// Update changes fields on an object and returns it
	Update(ctx context.Context, typeName, id string, fields map[string]any) (Object, error)

	// Delete deletes an object
	Delete(ctx context.Context, typeName, id string) (bool, error)
}

var _ API = (*Client)(nil)
