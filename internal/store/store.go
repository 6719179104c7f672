package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dharmasatrya/tripform/internal/models"
)

// Store receives submitted reservations.
type Store interface {
	Save(ctx context.Context, snapshot models.Snapshot) (models.Submission, error)
	Get(ctx context.Context, id string) (models.Submission, error)
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      24 * time.Hour,
	}
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		client: client,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Save stores the snapshot under its content ID. Submitting the same data
// twice yields the same ID and overwrites the earlier record.
func (s *RedisStore) Save(ctx context.Context, snapshot models.Snapshot) (models.Submission, error) {
	id, err := SubmissionID(snapshot)
	if err != nil {
		return models.Submission{}, err
	}
	sub := models.Submission{ID: id, Snapshot: snapshot, SubmittedAt: s.now().UTC()}

	data, err := json.Marshal(sub)
	if err != nil {
		return models.Submission{}, err
	}
	if err := s.client.Set(ctx, key(id), data, s.ttl).Err(); err != nil {
		return models.Submission{}, fmt.Errorf("save submission %s: %w", id, err)
	}
	return sub, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (models.Submission, error) {
	data, err := s.client.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return models.Submission{}, fmt.Errorf("%w: %s", models.ErrSubmissionNotFound, id)
	}
	if err != nil {
		return models.Submission{}, err
	}

	var sub models.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return models.Submission{}, err
	}
	return sub, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore keeps submissions in process. Used when Redis is disabled.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]models.Submission
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		subs: make(map[string]models.Submission),
		now:  time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, snapshot models.Snapshot) (models.Submission, error) {
	id, err := SubmissionID(snapshot)
	if err != nil {
		return models.Submission{}, err
	}
	sub := models.Submission{ID: id, Snapshot: snapshot, SubmittedAt: s.now().UTC()}

	s.mu.Lock()
	s.subs[id] = sub
	s.mu.Unlock()
	return sub, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return models.Submission{}, fmt.Errorf("%w: %s", models.ErrSubmissionNotFound, id)
	}
	return sub, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// SubmissionID is a content hash of the snapshot.
func SubmissionID(snapshot models.Snapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16]), nil
}

func key(id string) string {
	return "reservation:" + id
}
