package extrapolate

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Statement types.
const (
	StatementAppend uint8 = iota
	StatementExtend
	statementUnknown
)

// A Statement represents an operation to perform on a store. StatementAppend
// appends Value to the sequence, StatementExtend appends the prediction made
// using Schedule.
type Statement struct {
	Key               string
	Type              uint8
	Value             int64
	Schedule          Schedule
	CreateIfNotExists bool
}

// StoreConfig contains configuration for a Store.
type StoreConfig struct {
	Logger *zap.Logger
}

// A Store represents a collection of named working sequences. A Store can be
// used simultaneously from multiple goroutines.
type Store struct {
	m      map[string][]int64
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewStore creates and intializes a new Store.
func NewStore(config StoreConfig) *Store {
	s := &Store{m: make(map[string][]int64), logger: config.Logger}
	if s.logger == nil {
		s.logger = zap.L()
	}
	return s
}

// Add adds a copy of x to the store using key as its identifier.
// If a sequence already exists for the identifier it is silently replaced.
func (s *Store) Add(key string, x []int64) {
	s.mu.Lock()
	s.m[key] = clone(x)
	s.mu.Unlock()
}

// Delete removes the sequence associated to key, if any.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
}

// Get returns a copy of the sequence associated to key. The second return
// value is true if the key exists in the store and false if not.
func (s *Store) Get(key string) ([]int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	x, ok := s.m[key]
	if !ok {
		return nil, false
	}
	return clone(x), true
}

// Execute executes a statement against the store, returning an error if the
// statement cannot be executed or if the underlying operation returned an error.
func (s *Store) Execute(statement Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeUnsafe(statement)
}

// A BatchResult holds the outcome of a batch of statements.
type BatchResult interface {
	// ErrorVars returns one error per statement, nil for the statements
	// executed successfully.
	ErrorVars() []error
	// HasErrors reports whether at least one statement failed.
	HasErrors() bool
}

type batchResult struct {
	errors map[int]error
	n      int
}

func (b batchResult) ErrorVars() []error {
	errs := make([]error, b.n)
	for i, err := range b.errors {
		errs[i] = err
	}
	return errs
}

func (b batchResult) HasErrors() bool {
	return len(b.errors) > 0
}

// Batch executes multiple statements against the store. Individual errors are
// non blocking, they are reported through the returned BatchResult.
func (s *Store) Batch(statements []Statement) BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := batchResult{errors: make(map[int]error), n: len(statements)}
	for i, v := range statements {
		if err := s.executeUnsafe(v); err != nil {
			s.logger.Debug("statement failed", zap.Int("index", i), zap.String("key", v.Key), zap.Error(err))
			result.errors[i] = err
		}
	}
	return result
}

// Keys returns the identifiers known in the store, in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dump allows to export the store as a slice of bytes.
func (s *Store) Dump() ([]byte, error) {
	var buf bytes.Buffer
	s.mu.RLock()
	defer s.mu.RUnlock()
	container := make([]byte, binary.MaxVarintLen64)
	for k, v := range s.m {
		n := binary.PutVarint(container, int64(len(k)))
		buf.Write(container[:n])
		buf.WriteString(k)
		n = binary.PutVarint(container, int64(len(v)))
		buf.Write(container[:n])
		for _, x := range v {
			n = binary.PutVarint(container, x)
			buf.Write(container[:n])
		}
	}
	return buf.Bytes(), nil
}

// Load loads the content of a store previously exported using the Dump method,
// replacing the current content. The store is left unchanged on error.
func (s *Store) Load(data []byte) error {
	m := make(map[string][]int64)
	i := 0
	next := func() (int64, error) {
		v, n := binary.Varint(data[i:])
		if n <= 0 {
			return 0, errors.New("cannot decode the store")
		}
		i += n
		return v, nil
	}
	for i < len(data) {
		size, err := next()
		if err != nil {
			return err
		}
		if size < 0 || int64(len(data)-i) < size {
			return errors.New("cannot decode the store")
		}
		key := string(data[i : i+int(size)])
		i += int(size)
		count, err := next()
		if err != nil {
			return err
		}
		if count < 0 || int64(len(data)-i) < count {
			return errors.New("cannot decode the store")
		}
		x := make([]int64, count)
		for j := range x {
			if x[j], err = next(); err != nil {
				return err
			}
		}
		m[key] = x
	}
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
	return nil
}

// executeUnsafe executes a statement against the store, returning an error if the
// statement cannot be executed or if the underlying operation returned an error.
// This method is not goroutine-safe. The caller is responsible for properly
// acquiring / releasing the lock on the store.
func (s *Store) executeUnsafe(statement Statement) error {
	if statement.Type >= statementUnknown {
		return errors.New("unknown statement type")
	}
	x, ok := s.m[statement.Key]
	if !ok && !statement.CreateIfNotExists {
		return errors.New("key does not exist")
	}
	switch statement.Type {
	case StatementAppend:
		x = append(x, statement.Value)
	case StatementExtend:
		v, err := statement.Schedule.Predict(x)
		if err != nil {
			return fmt.Errorf("extend %s: %w", statement.Key, err)
		}
		x = append(x, v)
	}
	s.m[statement.Key] = x
	return nil
}

// clone returns a copy of x.
func clone(x []int64) []int64 {
	c := make([]int64, len(x))
	copy(c, x)
	return c
}
