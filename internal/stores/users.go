package stores

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userRecordVersion1 = 1
	userRecordTTL      = time.Hour
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserStoreBackend = errors.New("user store backend unavailable")
)

// Record is one simulated user credential: the id and email identify the
// user, PasswordHash holds the already-hashed password.
type Record struct {
	ID           string
	Email        string
	PasswordHash string
}

// UserStore persists simulated user credentials in Redis for the lifetime of
// one load-simulation run.
type UserStore struct {
	redis  redis.UniversalClient
	prefix string
}

func NewUserStore(redisClient redis.UniversalClient, prefix string) *UserStore {
	if prefix == "" {
		prefix = "hbu"
	}
	return &UserStore{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *UserStore) key(email string) string {
	return s.prefix + ":" + email
}

func (s *UserStore) Insert(ctx context.Context, record *Record) error {
	encoded, err := encodeUserRecord(record)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, s.key(record.Email), encoded, userRecordTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUserStoreBackend, err)
	}
	return nil
}

func (s *UserStore) Find(ctx context.Context, email string) (*Record, error) {
	data, err := s.redis.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUserStoreBackend, err)
	}
	return decodeUserRecord(data)
}

// Clear removes every record under the store's prefix.
func (s *UserStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, s.prefix+":*", 256).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUserStoreBackend, err)
		}
		if len(keys) > 0 {
			if err := s.redis.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrUserStoreBackend, err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

func encodeUserRecord(record *Record) ([]byte, error) {
	if record == nil {
		return nil, errors.New("nil user record")
	}

	var buf bytes.Buffer
	buf.WriteByte(userRecordVersion1)
	for _, field := range []string{record.ID, record.Email, record.PasswordHash} {
		if err := writeLenPrefixed(&buf, field); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeUserRecord(data []byte) (*Record, error) {
	r := bytes.NewReader(data)

	version, err := r.ReadByte()
	if err != nil || version != userRecordVersion1 {
		return nil, errors.New("corrupt user record")
	}

	fields := make([]string, 3)
	for i := range fields {
		fields[i], err = readLenPrefixed(r)
		if err != nil {
			return nil, errors.New("corrupt user record")
		}
	}

	return &Record{
		ID:           fields[0],
		Email:        fields[1],
		PasswordHash: fields[2],
	}, nil
}

func writeLenPrefixed(buf *bytes.Buffer, s string) error {
	if len(s) > 0xFFFF {
		return errors.New("field too long")
	}
	if err := binary.Write(buf, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := buf.WriteString(s)
	return err
}

func readLenPrefixed(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", err
	}
	field := make([]byte, n)
	if _, err := io.ReadFull(r, field); err != nil {
		return "", err
	}
	return string(field), nil
}
