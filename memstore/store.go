package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/sagarc03/roster"
)

type collection struct {
	mu      sync.RWMutex
	kind    roster.Kind
	records []roster.Record
	lastID  int
}

// Store holds one collection per kind.
type Store struct {
	strategy    roster.IDStrategy
	collections map[string]*collection
}

var _ roster.Repo = (*Store)(nil)

// New creates a Store with one seeded collection per kind.
func New(kinds roster.Kinds, strategy roster.IDStrategy) (*Store, error) {
	if !strategy.IsValid() {
		return nil, fmt.Errorf("new memstore: invalid id strategy: %s", strategy)
	}
	if err := kinds.Validate(); err != nil {
		return nil, fmt.Errorf("new memstore: %w", err)
	}

	s := &Store{
		strategy:    strategy,
		collections: make(map[string]*collection, len(kinds)),
	}

	for _, k := range kinds {
		c := &collection{
			kind:    k,
			records: make([]roster.Record, 0, len(k.Seed)),
		}
		for i, fields := range k.Seed {
			c.records = append(c.records, roster.NewRecord(i+1, maps.Clone(fields), k.Fields))
		}
		c.lastID = len(k.Seed)
		s.collections[k.Name] = c
	}

	return s, nil
}

func (s *Store) collection(kind string) (*collection, error) {
	c, ok := s.collections[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", roster.ErrUnknownKind, kind)
	}
	return c, nil
}

func (s *Store) List(ctx context.Context, kind string) ([]roster.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	c, err := s.collection(kind)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]roster.Record, len(c.records))
	for i, rec := range c.records {
		out[i] = rec.Clone()
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, kind string, id int) (roster.Record, error) {
	if err := ctx.Err(); err != nil {
		return roster.Record{}, fmt.Errorf("get: %w", err)
	}

	c, err := s.collection(kind)
	if err != nil {
		return roster.Record{}, fmt.Errorf("get: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	i := c.indexOf(id)
	if i < 0 {
		return roster.Record{}, fmt.Errorf("get: %w", roster.ErrNotFound)
	}
	return c.records[i].Clone(), nil
}

func (s *Store) Insert(ctx context.Context, kind string, fields roster.Fields) (roster.Record, error) {
	if err := ctx.Err(); err != nil {
		return roster.Record{}, fmt.Errorf("insert: %w", err)
	}

	c, err := s.collection(kind)
	if err != nil {
		return roster.Record{}, fmt.Errorf("insert: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec := roster.NewRecord(c.nextID(s.strategy), maps.Clone(fields), c.kind.Fields)
	delete(rec.Fields, "id")
	c.records = append(c.records, rec)

	return rec.Clone(), nil
}

func (s *Store) Update(ctx context.Context, kind string, id int, patch roster.Fields) (roster.Record, error) {
	if err := ctx.Err(); err != nil {
		return roster.Record{}, fmt.Errorf("update: %w", err)
	}

	c, err := s.collection(kind)
	if err != nil {
		return roster.Record{}, fmt.Errorf("update: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return roster.Record{}, fmt.Errorf("update: %w", roster.ErrNotFound)
	}

	merged := c.records[i].Clone()
	if merged.Fields == nil {
		merged.Fields = roster.Fields{}
	}
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged.Fields[k] = v
	}
	c.records[i] = merged

	return merged.Clone(), nil
}

func (s *Store) Delete(ctx context.Context, kind string, id int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	c, err := s.collection(kind)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return fmt.Errorf("delete: %w", roster.ErrNotFound)
	}

	c.records = slices.Delete(c.records, i, i+1)
	return nil
}

// Len returns the number of records currently held for a kind.
func (s *Store) Len(kind string) (int, error) {
	c, err := s.collection(kind)
	if err != nil {
		return 0, fmt.Errorf("len: %w", err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records), nil
}

// indexOf returns the position of the first record with id, or -1.
// Callers must hold c.mu.
func (c *collection) indexOf(id int) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID must be called with c.mu held for writing.
func (c *collection) nextID(strategy roster.IDStrategy) int {
	if strategy == roster.IDLength {
		return len(c.records) + 1
	}
	c.lastID++
	return c.lastID
}
