package responsecache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "respcache"

// hash fields of an entry
const (
	fieldFingerprint = "fingerprint"
	fieldQuery       = "query"
	fieldResponse    = "response"
	fieldSources     = "sources"
	fieldHitCount    = "hit_count"
	fieldCreatedAt   = "created_at"
	fieldExpiresAt   = "expires_at"
)

// KEYS[1] entry hash, KEYS[2] expiry index
// ARGV fingerprint, query, response, sources, now_ms, expires_ms
var upsertScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('HSET', KEYS[1], 'response', ARGV[3], 'sources', ARGV[4], 'expires_at', ARGV[6])
	redis.call('HINCRBY', KEYS[1], 'hit_count', '1')
else
	redis.call('HSET', KEYS[1],
		'fingerprint', ARGV[1], 'query', ARGV[2], 'response', ARGV[3], 'sources', ARGV[4],
		'hit_count', '1', 'created_at', ARGV[5], 'expires_at', ARGV[6])
end
redis.call('ZADD', KEYS[2], ARGV[6], ARGV[1])
return redis.call('HGETALL', KEYS[1])
`)

// KEYS[1] entry hash; ARGV now_ms
var lookupScript = redis.NewScript(`
local expires = redis.call('HGET', KEYS[1], 'expires_at')
if not expires then
	return false
end
if tonumber(expires) <= tonumber(ARGV[1]) then
	return false
end
redis.call('HINCRBY', KEYS[1], 'hit_count', '1')
return redis.call('HGETALL', KEYS[1])
`)

// KEYS[1] expiry index; ARGV now_ms, entry key prefix
var deleteExpiredScript = redis.NewScript(`
local ids = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(ids) do
	redis.call('DEL', ARGV[2] .. id)
	redis.call('ZREM', KEYS[1], id)
end
return #ids
`)

// KEYS[1] expiry index; ARGV entry key prefix
var deleteAllScript = redis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], '0', '-1')
for _, id in ipairs(ids) do
	redis.call('DEL', ARGV[1] .. id)
end
redis.call('DEL', KEYS[1])
return #ids
`)

// implements Store using Redis: one hash per entry plus a sorted set of
// fingerprints scored by expiration. entries carry no native key TTL so
// expired rows stay visible to List until swept, like the SQL stores.
// the scripts build keys from ARGV, so a single-node deployment is assumed.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// creates a new Redis-backed store; an empty prefix uses "respcache"
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) entryPrefix() string {
	return s.prefix + ":entry:"
}

func (s *RedisStore) entryKey(fingerprint string) string {
	return s.entryPrefix() + fingerprint
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":index"
}

func (s *RedisStore) Lookup(ctx context.Context, fingerprint string, now time.Time) (*Entry, error) {
	res, err := lookupScript.Run(ctx, s.client,
		[]string{s.entryKey(fingerprint)},
		now.UnixMilli(),
	).Slice()

	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up cache entry: %w", err)
	}

	return entryFromPairs(res)
}

func (s *RedisStore) Upsert(ctx context.Context, params UpsertParams, now time.Time) (*Entry, error) {
	sources, err := encodeSources(params.Sources)
	if err != nil {
		return nil, err
	}

	encoded := ""
	if sources != nil {
		encoded = *sources
	}

	res, err := upsertScript.Run(ctx, s.client,
		[]string{s.entryKey(params.Fingerprint), s.indexKey()},
		params.Fingerprint,
		params.Query,
		params.Response,
		encoded,
		now.UnixMilli(),
		now.Add(params.TTL).UnixMilli(),
	).Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cache entry: %w", err)
	}

	return entryFromPairs(res)
}

func (s *RedisStore) DeleteAll(ctx context.Context) (int64, error) {
	n, err := deleteAllScript.Run(ctx, s.client, []string{s.indexKey()}, s.entryPrefix()).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to delete cache entries: %w", err)
	}

	return n, nil
}

func (s *RedisStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	n, err := deleteExpiredScript.Run(ctx, s.client,
		[]string{s.indexKey()},
		now.UnixMilli(),
		s.entryPrefix(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}

	return n, nil
}

func (s *RedisStore) List(ctx context.Context) ([]Entry, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list cache index: %w", err)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))

	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.entryKey(id))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to load cache entries: %w", err)
	}

	entries := make([]Entry, 0, len(ids))

	for _, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}

		entry, err := entryFromHash(fields)
		if err != nil {
			return nil, err
		}

		entries = append(entries, *entry)
	}

	return entries, nil
}

// the client stays owned by the caller
func (s *RedisStore) Close() error {
	return nil
}

// converts a flat HGETALL script reply into an entry
func entryFromPairs(pairs []any) (*Entry, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("malformed cache entry reply of length %d", len(pairs))
	}

	fields := make(map[string]string, len(pairs)/2)

	for i := 0; i < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		value, _ := pairs[i+1].(string)
		fields[key] = value
	}

	return entryFromHash(fields)
}

func entryFromHash(fields map[string]string) (*Entry, error) {
	hits, err := strconv.ParseInt(fields[fieldHitCount], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hit_count: %w", err)
	}

	createdAt, err := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}

	expiresAt, err := strconv.ParseInt(fields[fieldExpiresAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expires_at: %w", err)
	}

	raw := fields[fieldSources]

	sources, err := decodeSources(&raw)
	if err != nil {
		return nil, err
	}

	return &Entry{
		Fingerprint: fields[fieldFingerprint],
		Query:       fields[fieldQuery],
		Response:    fields[fieldResponse],
		Sources:     sources,
		HitCount:    hits,
		CreatedAt:   time.UnixMilli(createdAt),
		ExpiresAt:   time.UnixMilli(expiresAt),
	}, nil
}
