// Package testutil provides the in-memory list store fake and fixtures
// shared by service and CLI tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mvbarbosa/capex/internal/liststore"
)

// FakeStore is an in-memory liststore.Client. It assigns sequential ids
// across all collections (mirroring the store's per-site item counter),
// supports the "field eq value" filter subset the orchestrator uses, and
// records every call so tests can assert on ordering.
type FakeStore struct {
	mu     sync.Mutex
	nextID int
	items  map[string]map[int]liststore.Record

	// Calls lists every operation in order, e.g. "delete peps 3",
	// "create milestones".
	Calls []string

	// FailOn, when non-empty, makes the matching call (by prefix) fail.
	FailOn string
}

// NewFakeStore returns an empty fake.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		nextID: 0,
		items:  make(map[string]map[int]liststore.Record),
	}
}

func (s *FakeStore) record(call string) error {
	s.Calls = append(s.Calls, call)
	if s.FailOn != "" && strings.HasPrefix(call, s.FailOn) {
		return fmt.Errorf("%w: forced failure on %q", liststore.ErrRemoteUnavailable, call)
	}
	return nil
}

func (s *FakeStore) collection(name string) map[int]liststore.Record {
	if s.items[name] == nil {
		s.items[name] = make(map[int]liststore.Record)
	}
	return s.items[name]
}

func (s *FakeStore) Create(ctx context.Context, collection string, fields liststore.Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("create " + collection); err != nil {
		return 0, err
	}

	s.nextID++
	id := s.nextID
	stored := liststore.Record{liststore.FieldID: id}
	for k, v := range fields {
		stored[k] = v
	}
	s.collection(collection)[id] = stored
	return id, nil
}

func (s *FakeStore) Update(ctx context.Context, collection string, id int, fields liststore.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record(fmt.Sprintf("update %s %d", collection, id)); err != nil {
		return err
	}

	item, ok := s.collection(collection)[id]
	if !ok {
		return fmt.Errorf("%w: %s(%d)", liststore.ErrNotFound, collection, id)
	}
	for k, v := range fields {
		item[k] = v
	}
	return nil
}

func (s *FakeStore) Delete(ctx context.Context, collection string, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record(fmt.Sprintf("delete %s %d", collection, id)); err != nil {
		return err
	}

	if _, ok := s.collection(collection)[id]; !ok {
		return fmt.Errorf("%w: %s(%d)", liststore.ErrNotFound, collection, id)
	}
	delete(s.collection(collection), id)
	return nil
}

func (s *FakeStore) Query(ctx context.Context, collection string, q liststore.Query) ([]liststore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record("query " + collection); err != nil {
		return nil, err
	}

	field, value, err := parseFilter(q.Filter)
	if err != nil {
		return nil, err
	}

	var out []liststore.Record
	for _, item := range s.collection(collection) {
		if field != "" && fmt.Sprint(item[field]) != value {
			continue
		}
		out = append(out, item)
	}
	// The store returns items in id order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (s *FakeStore) GetByID(ctx context.Context, collection string, id int) (liststore.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.record(fmt.Sprintf("get %s %d", collection, id)); err != nil {
		return nil, err
	}

	item, ok := s.collection(collection)[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s(%d)", liststore.ErrNotFound, collection, id)
	}
	return item, nil
}

// Count returns how many items a collection holds.
func (s *FakeStore) Count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items[collection])
}

// Seed inserts an item with an explicit id, for arranging test state.
func (s *FakeStore) Seed(collection string, id int, fields liststore.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := liststore.Record{liststore.FieldID: id}
	for k, v := range fields {
		stored[k] = v
	}
	s.collection(collection)[id] = stored
	if id > s.nextID {
		s.nextID = id
	}
}

// parseFilter understands the "field eq value" subset used by the services.
func parseFilter(filter string) (field, value string, err error) {
	if filter == "" {
		return "", "", nil
	}
	parts := strings.SplitN(filter, " eq ", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unsupported filter %q", filter)
	}
	return strings.TrimSpace(parts[0]), strings.Trim(strings.TrimSpace(parts[1]), "'"), nil
}
