package hashbench

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/hashbench/hasher"
	"github.com/MrEthical07/hashbench/internal/sysinfo"
)

// fakeHasher is a deterministic hasher for engine and simulator tests. A
// non-zero delay simulates fixed per-operation cost.
type fakeHasher struct {
	params  ParameterSet
	delay   time.Duration
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return "digest:" + password, nil
}

func (f *fakeHasher) Verify(password, encoded string) (bool, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return encoded == "digest:"+password, nil
}

func (f *fakeHasher) Configure(params ParameterSet) error {
	if err := params.Validate(); err != nil {
		return err
	}
	f.params = params
	return nil
}

func (f *fakeHasher) Params() ParameterSet {
	return f.params
}

// fakeProvider reports a fixed direct CPU percentage and constant memory.
type fakeProvider struct {
	percent float64
}

func (p *fakeProvider) Snapshot() (sysinfo.Snapshot, error) {
	return sysinfo.Snapshot{
		Timestamp:       float64(time.Now().UnixNano()) / 1e9,
		MemoryBytes:     64 * 1024 * 1024,
		PeakMemoryBytes: 96 * 1024 * 1024,
		HasPercent:      true,
		Percent:         p.percent,
	}, nil
}

func (p *fakeProvider) CoreCount() int { return 4 }

func (p *fakeProvider) LoadAverage() (float64, error) { return 1.0, nil }

// memStore is an in-memory UserStore for tests that do not need Redis.
type memStore struct {
	mu      sync.Mutex
	records map[string]UserRecord
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]UserRecord)}
}

func (s *memStore) Insert(_ context.Context, record *UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Email] = *record
	return nil
}

func (s *memStore) Find(_ context.Context, email string) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &record, nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]UserRecord)
	return nil
}

func testArgon2Params(t *testing.T, label string) ParameterSet {
	t.Helper()
	params, err := hasher.NewArgon2Params(label, 1024, 1, 1)
	if err != nil {
		t.Fatalf("NewArgon2Params error: %v", err)
	}
	return params
}
