package grader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"tourjudge/tour"

	"github.com/go-redis/redis/v9"
	log "github.com/sirupsen/logrus"
)

// Scoring is a pure function of (problem text, candidate output), so
// results can be memoized; re-grading the same solver output is free.
const scoreCacheTTL = 24 * time.Hour

func scoreCacheKey(raw, output string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\n", len(raw))
	h.Write([]byte(raw))
	h.Write([]byte(output))
	return "tourjudge:score:" + hex.EncodeToString(h.Sum(nil))
}

func cacheGet(ctx context.Context, rdb *redis.Client, key string) (*tour.ScoreResult, bool) {
	data, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.WithError(err).Warn("Score cache read failed")
		}
		return nil, false
	}
	var res tour.ScoreResult
	if err := json.Unmarshal(data, &res); err != nil {
		log.WithError(err).Warn("Score cache entry corrupted")
		return nil, false
	}
	return &res, true
}

func cachePut(ctx context.Context, rdb *redis.Client, key string, res *tour.ScoreResult) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := rdb.Set(ctx, key, data, scoreCacheTTL).Err(); err != nil {
		log.WithError(err).Warn("Score cache write failed")
	}
}
