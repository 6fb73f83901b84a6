package stats

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statsTTL = 7 * 24 * time.Hour

	MaxHours     = 7 * 24
	DefaultHours = 24
)

type Store struct {
	redis *redis.Client
	now   func() time.Time
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{
		redis: redisClient,
		now:   time.Now,
	}
}

// Record counts one call to op in the current UTC hour. Latency is summed
// for every call so the average covers failures too.
func (s *Store) Record(ctx context.Context, op string, elapsed time.Duration, callErr error) error {
	now := s.now().UTC()
	key := StatsRedisKey(now.Format("2006-01-02"), now.Hour())

	outcome := fieldOK
	if callErr != nil {
		outcome = fieldError
	}

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, field(op, outcome), 1)
	pipe.HIncrBy(ctx, key, field(op, fieldLatency), elapsed.Milliseconds())
	pipe.Expire(ctx, key, statsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetStats returns the most recent hours first, skipping hours with no calls.
func (s *Store) GetStats(ctx context.Context, hours int) ([]*HourStats, error) {
	if hours <= 0 {
		hours = DefaultHours
	}
	if hours > MaxHours {
		hours = MaxHours
	}

	now := s.now().UTC()
	result := make([]*HourStats, 0)

	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(i) * time.Hour)
		date := t.Format("2006-01-02")

		data, err := s.redis.HGetAll(ctx, StatsRedisKey(date, t.Hour())).Result()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}

		result = append(result, &HourStats{
			Date:       date,
			Hour:       t.Hour(),
			Operations: parseOperations(data),
		})
	}

	return result, nil
}

func parseOperations(data map[string]string) []OperationStats {
	byOp := make(map[string]*OperationStats)
	latency := make(map[string]int64)

	for key, raw := range data {
		op, suffix, ok := strings.Cut(key, ":")
		if !ok {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}

		entry, exists := byOp[op]
		if !exists {
			entry = &OperationStats{Operation: op}
			byOp[op] = entry
		}

		switch suffix {
		case fieldOK:
			entry.OK = v
		case fieldError:
			entry.Errors = v
		case fieldLatency:
			latency[op] = v
		}
	}

	ops := make([]OperationStats, 0, len(byOp))
	for op, entry := range byOp {
		if calls := entry.OK + entry.Errors; calls > 0 {
			entry.AvgLatencyMs = latency[op] / calls
		}
		ops = append(ops, *entry)
	}
	sort.Slice(ops, func(i, j int) bool {
		return ops[i].Operation < ops[j].Operation
	})
	return ops
}
