package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Snapshot names. Each one is a single JSON document holding the entire
// record collection; saves always replace the whole document.
const (
	SnapshotBookings = "bookings"
	SnapshotRooms    = "room-status"
	SnapshotItems    = "item-status"
	SnapshotFeedback = "feedback"
)

var ErrNoSnapshot = errors.New("snapshot does not exist")

// Blobs loads and saves named snapshots. Implementations must make Save
// all-or-nothing: a reader never observes a partially written snapshot.
type Blobs interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

type RedisBlobs struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobs(host string) (*RedisBlobs, error) {
	opt, err := redis.ParseURL(host)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil, err
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return &RedisBlobs{client: rdb, prefix: "bau"}, nil
}

// NewRedisBlobsWithClient wraps an existing client, for custom pools or mocks.
func NewRedisBlobsWithClient(c *redis.Client) *RedisBlobs {
	return &RedisBlobs{client: c, prefix: "bau"}
}

func (r *RedisBlobs) key(name string) string {
	return fmt.Sprintf("%s:%s", r.prefix, name)
}

func (r *RedisBlobs) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(name)).Bytes()
	if err == redis.Nil {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", name, err)
	}
	return data, nil
}

func (r *RedisBlobs) Save(ctx context.Context, name string, data []byte) error {
	if err := r.client.Set(ctx, r.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", name, err)
	}
	return nil
}

// FileBlobs keeps one JSON file per snapshot under a directory. Used for
// local runs when no Redis host is configured.
type FileBlobs struct {
	dir string
}

func NewFileBlobs(dir string) (*FileBlobs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}
	return &FileBlobs{dir: dir}, nil
}

func (f *FileBlobs) path(name string) string {
	return path.Join(f.dir, name+".json")
}

func (f *FileBlobs) Load(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(f.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", name, err)
	}
	return data, nil
}

func (f *FileBlobs) Save(_ context.Context, name string, data []byte) error {
	// Write-then-rename so a crash mid-save never leaves a torn snapshot.
	tmp := f.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp, f.path(name)); err != nil {
		return fmt.Errorf("saving snapshot %s: %w", name, err)
	}
	return nil
}

// MemoryBlobs is an in-process snapshot store for tests and ephemeral runs.
type MemoryBlobs struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{blobs: map[string][]byte{}}
}

func (m *MemoryBlobs) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[name]
	if !ok {
		return nil, ErrNoSnapshot
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemoryBlobs) Save(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[name] = cp
	return nil
}
