package roster

import (
	"context"
	"errors"
	"fmt"
)

type RosterService struct {
	repo  Repo
	kinds Kinds
}

func NewRosterService(repo Repo, kinds Kinds) (*RosterService, error) {
	if repo == nil {
		return nil, fmt.Errorf("new roster service: %w: repo cannot be nil", ErrInvalidInput)
	}
	if err := kinds.Validate(); err != nil {
		return nil, fmt.Errorf("new roster service: %w", err)
	}
	return &RosterService{
		repo:  repo,
		kinds: kinds,
	}, nil
}

// Kinds returns the kinds served by this service.
func (s *RosterService) Kinds() Kinds {
	return s.kinds
}

// Kind looks up a registered kind by name.
// Returns ErrUnknownKind if the name is not registered.
func (s *RosterService) Kind(name string) (Kind, error) {
	k, ok := s.kinds.Lookup(name)
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}

func (s *RosterService) List(ctx context.Context, kind string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}

	if _, err := s.Kind(kind); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	records, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, repoError("list "+kind, err)
	}

	return records, nil
}

// Get returns the record with the given id.
// Ids that can never exist (zero or negative) report ErrNotFound rather than
// an input error, so malformed URL ids behave like missing records.
func (s *RosterService) Get(ctx context.Context, kind string, id int) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("get %s: %w", kind, err)
	}

	if _, err := s.Kind(kind); err != nil {
		return Record{}, fmt.Errorf("get: %w", err)
	}

	if id <= 0 {
		return Record{}, fmt.Errorf("get %s %d: %w", kind, id, ErrNotFound)
	}

	rec, err := s.repo.Get(ctx, kind, id)
	if err != nil {
		return Record{}, repoError(fmt.Sprintf("get %s %d", kind, id), err)
	}

	return rec, nil
}

// Create stores a new record built from fields.
// Any "id" member in fields is discarded; the repo assigns the id.
//
// Error types returned:
//   - ErrUnknownKind: kind is not registered
//   - ErrInvalidInput: fields is nil
//   - context.Canceled or context.DeadlineExceeded: context was cancelled
func (s *RosterService) Create(ctx context.Context, kind string, fields Fields) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("create %s: %w", kind, err)
	}

	if _, err := s.Kind(kind); err != nil {
		return Record{}, fmt.Errorf("create: %w", err)
	}

	if fields == nil {
		return Record{}, fmt.Errorf("create %s: %w: fields cannot be nil", kind, ErrInvalidInput)
	}

	rec, err := s.repo.Insert(ctx, kind, withoutID(fields))
	if err != nil {
		return Record{}, repoError("create "+kind, err)
	}

	return rec, nil
}

// Update shallow-merges patch onto the record with the given id.
// Record ids are immutable: an "id" member in patch is discarded.
func (s *RosterService) Update(ctx context.Context, kind string, id int, patch Fields) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, fmt.Errorf("update %s: %w", kind, err)
	}

	if _, err := s.Kind(kind); err != nil {
		return Record{}, fmt.Errorf("update: %w", err)
	}

	if patch == nil {
		return Record{}, fmt.Errorf("update %s: %w: patch cannot be nil", kind, ErrInvalidInput)
	}

	if id <= 0 {
		return Record{}, fmt.Errorf("update %s %d: %w", kind, id, ErrNotFound)
	}

	rec, err := s.repo.Update(ctx, kind, id, withoutID(patch))
	if err != nil {
		return Record{}, repoError(fmt.Sprintf("update %s %d", kind, id), err)
	}

	return rec, nil
}

func (s *RosterService) Delete(ctx context.Context, kind string, id int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	if _, err := s.Kind(kind); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if id <= 0 {
		return fmt.Errorf("delete %s %d: %w", kind, id, ErrNotFound)
	}

	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return repoError(fmt.Sprintf("delete %s %d", kind, id), err)
	}

	return nil
}

// repoError wraps a repo failure. Errors the caller can act on keep their
// sentinel, anything else is also marked ErrInternal.
func repoError(op string, err error) error {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnknownKind),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
	}
}
