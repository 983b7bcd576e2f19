package testsupport

import (
	"context"
	"fmt"
	"sync"
)

// Op names a store operation.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpDelete Op = "delete"
)

// Call is one recorded store invocation.
type Call struct {
	Op        Op
	ContentID string
	Key       string
	Value     any
}

// RecordingStore is an in-memory metadata store that records every call so
// tests can assert on the exact sequence of writes.
type RecordingStore struct {
	mu     sync.Mutex
	data   map[string]map[string]any
	calls  []Call
	failOn map[Op]error
}

// NewRecordingStore creates an empty store.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{
		data:   make(map[string]map[string]any),
		failOn: make(map[Op]error),
	}
}

// Seed stores value without recording a call.
func (s *RecordingStore) Seed(contentID, key string, value any) *RecordingStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bucket(contentID)[key] = value
	return s
}

// FailOn makes every subsequent op return err.
func (s *RecordingStore) FailOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *RecordingStore) Get(_ context.Context, contentID, key string) (any, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpGet, ContentID: contentID, Key: key})
	if err := s.failOn[OpGet]; err != nil {
		return nil, false, err
	}
	value, ok := s.data[contentID][key]
	return value, ok, nil
}

func (s *RecordingStore) Set(_ context.Context, contentID, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpSet, ContentID: contentID, Key: key, Value: value})
	if err := s.failOn[OpSet]; err != nil {
		return err
	}
	s.bucket(contentID)[key] = value
	return nil
}

func (s *RecordingStore) Delete(_ context.Context, contentID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{Op: OpDelete, ContentID: contentID, Key: key})
	if err := s.failOn[OpDelete]; err != nil {
		return err
	}
	delete(s.data[contentID], key)
	return nil
}

// Calls returns recorded calls, optionally filtered to the given ops.
func (s *RecordingStore) Calls(ops ...Op) []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Call, 0, len(s.calls))
	for _, call := range s.calls {
		if len(ops) == 0 || containsOp(ops, call.Op) {
			out = append(out, call)
		}
	}
	return out
}

// Writes returns only set and delete calls.
func (s *RecordingStore) Writes() []Call {
	return s.Calls(OpSet, OpDelete)
}

// Value returns what is currently stored.
func (s *RecordingStore) Value(contentID, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.data[contentID][key]
	return value, ok
}

// Reset clears the call log but keeps stored data.
func (s *RecordingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *RecordingStore) String() string {
	return fmt.Sprintf("RecordingStore(%d calls)", len(s.Calls()))
}

func (s *RecordingStore) bucket(contentID string) map[string]any {
	bucket, ok := s.data[contentID]
	if !ok {
		bucket = make(map[string]any)
		s.data[contentID] = bucket
	}
	return bucket
}

func containsOp(ops []Op, op Op) bool {
	for _, candidate := range ops {
		if candidate == op {
			return true
		}
	}
	return false
}
