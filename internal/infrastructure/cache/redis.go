package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	connectPingTimeout = 2 * time.Second
	fallbackTTL        = 600 * time.Second
)

// Redis caches ranked recommendation payloads. When the server is
// unreachable the cache degrades to a no-op so request handling never
// depends on it.
type Redis struct {
	client *redis.Client
	logger *log.Logger

	warnedUnavailable atomic.Bool
}

func NewRedis(logger *log.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addrFromEnv(),
		Password: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
		}
		_ = client.Close()
		client = nil
	}

	return &Redis{client: client, logger: logger}
}

func addrFromEnv() string {
	host := strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("REDIS_PORT"))
	if port == "" {
		port = "6379"
	}
	return net.JoinHostPort(host, port)
}

// RecommendationKey is the cache key for one job's ranked candidates,
// namespaced by owning company so invalidation can sweep per company.
func RecommendationKey(companyID, jobID uuid.UUID) string {
	return fmt.Sprintf("rec:company:%s:job:%s", companyID, jobID)
}

func companyPattern(companyID uuid.UUID) string {
	return fmt.Sprintf("rec:company:%s:*", companyID)
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Printf("[Cache] Redis unavailable, bypassing cache: %v", err)
	}
}

// GetJSON reports whether key held a value that unmarshalled into out. A
// bypassed cache always misses.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTLFromEnv()
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// InvalidateCompany drops every cached recommendation for one company's
// postings. Called whenever a job's or an applicant's stored skills change.
func (r *Redis) InvalidateCompany(ctx context.Context, companyID uuid.UUID) error {
	if r.isUnavailable() {
		return nil
	}

	iter := r.client.Scan(ctx, 0, companyPattern(companyID), 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil && r.logger != nil {
			r.logger.Printf("[Cache] Redis delete error key=%s err=%v", iter.Val(), err)
		}
	}
	return iter.Err()
}

// DefaultTTLFromEnv reads REDIS_TTL as a second count, falling back to ten
// minutes when unset or unparsable.
func DefaultTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("REDIS_TTL"))
	if raw == "" {
		return fallbackTTL
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return fallbackTTL
	}
	return time.Duration(secs) * time.Second
}
