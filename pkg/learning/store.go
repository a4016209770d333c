// Package learning implements the feedback-driven adaptation layer:
// per-feature weight deltas, per-domain reputation counters, and a bounded
// feedback log, all backed by a key-value store.
package learning

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sarthakk123/phishing-detection-using-nlp/pkg/detect"
)

// DomainReputation accumulates confirmed verdicts for one domain.
type DomainReputation struct {
	Domain          string    `json:"domain"`
	PhishingCount   int       `json:"phishingCount"`
	LegitimateCount int       `json:"legitimateCount"`
	LastSeen        time.Time `json:"lastSeen"`
}

// FeedbackEntry is one operator verdict on a prior analysis.
type FeedbackEntry struct {
	ID        string               `json:"id"`
	Text      string               `json:"text"`
	URLs      []string             `json:"urls"`
	Predicted detect.ThreatLevel   `json:"predicted"`
	Actual    detect.ThreatLevel   `json:"actual"`
	Features  detect.FeatureVector `json:"features"`
	CreatedAt time.Time            `json:"createdAt"`
}

// FeedbackLogLimit bounds the retained feedback log; older entries are
// evicted first.
const FeedbackLogLimit = 100

// Store is the key-value persistence boundary for learned state. All
// methods must be safe for concurrent use.
type Store interface {
	LoadWeights(ctx context.Context) (map[string]float64, error)
	SaveWeights(ctx context.Context, adjustments map[string]float64) error
	LoadReputation(ctx context.Context) (map[string]DomainReputation, error)
	SaveDomain(ctx context.Context, rep DomainReputation) error
	AppendFeedback(ctx context.Context, entry FeedbackEntry) error
}

// RedisStore persists learned state in Redis: weight adjustments as one
// JSON string, reputation as a hash keyed by domain, and the feedback log
// as a trimmed list.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// DefaultKeyPrefix namespaces all keys written by a RedisStore.
const DefaultKeyPrefix = "phishdetect:"

// NewRedisStore wraps an existing Redis client. An empty prefix selects
// DefaultKeyPrefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) weightsKey() string    { return s.prefix + "weights" }
func (s *RedisStore) reputationKey() string { return s.prefix + "reputation" }
func (s *RedisStore) feedbackKey() string   { return s.prefix + "feedback" }

func (s *RedisStore) LoadWeights(ctx context.Context) (map[string]float64, error) {
	raw, err := s.client.Get(ctx, s.weightsKey()).Result()
	if err == redis.Nil {
		return map[string]float64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load weight adjustments: %w", err)
	}

	adjustments := make(map[string]float64)
	if err := json.Unmarshal([]byte(raw), &adjustments); err != nil {
		return nil, fmt.Errorf("decode weight adjustments: %w", err)
	}
	return adjustments, nil
}

func (s *RedisStore) SaveWeights(ctx context.Context, adjustments map[string]float64) error {
	data, err := json.Marshal(adjustments)
	if err != nil {
		return fmt.Errorf("encode weight adjustments: %w", err)
	}
	if err := s.client.Set(ctx, s.weightsKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("save weight adjustments: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadReputation(ctx context.Context) (map[string]DomainReputation, error) {
	raw, err := s.client.HGetAll(ctx, s.reputationKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("load domain reputation: %w", err)
	}

	reputation := make(map[string]DomainReputation, len(raw))
	for domain, blob := range raw {
		var rep DomainReputation
		if err := json.Unmarshal([]byte(blob), &rep); err != nil {
			return nil, fmt.Errorf("decode reputation for %s: %w", domain, err)
		}
		reputation[domain] = rep
	}
	return reputation, nil
}

func (s *RedisStore) SaveDomain(ctx context.Context, rep DomainReputation) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode reputation for %s: %w", rep.Domain, err)
	}
	if err := s.client.HSet(ctx, s.reputationKey(), rep.Domain, data).Err(); err != nil {
		return fmt.Errorf("save reputation for %s: %w", rep.Domain, err)
	}
	return nil
}

func (s *RedisStore) AppendFeedback(ctx context.Context, entry FeedbackEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode feedback entry: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, s.feedbackKey(), data)
	pipe.LTrim(ctx, s.feedbackKey(), 0, FeedbackLogLimit-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append feedback entry: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// MemoryStore is the in-process Store used when no Redis address is
// configured, and by tests.
type MemoryStore struct {
	mu          sync.Mutex
	adjustments map[string]float64
	reputation  map[string]DomainReputation
	feedback    []FeedbackEntry
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		adjustments: make(map[string]float64),
		reputation:  make(map[string]DomainReputation),
	}
}

func (s *MemoryStore) LoadWeights(_ context.Context) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]float64, len(s.adjustments))
	for k, v := range s.adjustments {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) SaveWeights(_ context.Context, adjustments map[string]float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adjustments = make(map[string]float64, len(adjustments))
	for k, v := range adjustments {
		s.adjustments[k] = v
	}
	return nil
}

func (s *MemoryStore) LoadReputation(_ context.Context) (map[string]DomainReputation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]DomainReputation, len(s.reputation))
	for k, v := range s.reputation {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) SaveDomain(_ context.Context, rep DomainReputation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reputation[rep.Domain] = rep
	return nil
}

func (s *MemoryStore) AppendFeedback(_ context.Context, entry FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feedback = append(s.feedback, entry)
	if len(s.feedback) > FeedbackLogLimit {
		s.feedback = s.feedback[len(s.feedback)-FeedbackLogLimit:]
	}
	return nil
}
