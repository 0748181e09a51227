package roster

import "context"

// Repo defines the interface for record collection persistence.
// Implementations must handle concurrent access safely: id assignment and
// insertion must happen atomically with respect to other writers.
//
// All methods accept a context for cancellation. Records returned by a Repo
// are copies; mutating them does not change stored state.
type Repo interface {
	// List returns every record of a kind in insertion order.
	// It returns an empty, non-nil slice for an empty collection.
	List(ctx context.Context, kind string) ([]Record, error)

	// Get returns the first record of a kind with the given id.
	// Returns ErrNotFound if no record matches.
	Get(ctx context.Context, kind string, id int) (Record, error)

	// Insert assigns an id to fields according to the collection's
	// IDStrategy, appends the record and returns it.
	Insert(ctx context.Context, kind string, fields Fields) (Record, error)

	// Update shallow-merges patch onto the first record with the given id:
	// members present in patch overwrite, absent members are retained.
	// Returns ErrNotFound if no record matches.
	Update(ctx context.Context, kind string, id int, patch Fields) (Record, error)

	// Delete removes the first record with the given id.
	// Returns ErrNotFound if no record matches.
	Delete(ctx context.Context, kind string, id int) error
}
