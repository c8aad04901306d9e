package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a store has no session under an id.
var ErrSessionNotFound = errors.New("session not found")

// Store persists tracker sessions by id.
type Store interface {
	Put(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Close() error
}

// FileStore keeps one JSON file per session in a directory.
type FileStore struct {
	Dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (f *FileStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(f.Dir, id+".json"), nil
}

// Put writes the session file.
func (f *FileStore) Put(_ context.Context, sess *Session) error {
	path, err := f.path(sess.ID)
	if err != nil {
		return err
	}
	data, err := Save(sess)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", sess.ID, err)
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", sess.ID, err)
	}
	return nil
}

// Get reads the session file.
func (f *FileStore) Get(_ context.Context, id string) (*Session, error) {
	path, err := f.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", id, err)
	}
	sess, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return sess, nil
}

// Close is a no-op.
func (f *FileStore) Close() error { return nil }

// RedisStore keeps sessions as JSON strings in Redis.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

const sessionKeyPrefix = "questlogic:session:"

// NewRedisStore connects to the Redis server at url (redis://host:port/db).
// A zero ttl keeps sessions forever.
func NewRedisStore(url string, ttl time.Duration, logger *zap.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Ping checks the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Put stores the session.
func (r *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := Save(sess)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", sess.ID, err)
	}
	key := sessionKeyPrefix + sess.ID
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Error("Redis SET failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set failed: %w", err)
	}
	r.logger.Debug("Session stored", zap.String("key", key), zap.Int("checked", len(sess.Checked)))
	return nil
}

// Get loads the session.
func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	key := sessionKeyPrefix + id
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		r.logger.Error("Redis GET failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	sess, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return sess, nil
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", zap.Error(err))
		return err
	}
	return nil
}
