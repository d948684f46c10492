package metadata

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geosiss/borehole/geoerr"
)

// RedisOptions configures the Redis-backed registry connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// Namespace prefixes every key this registry writes. Defaults to
	// "borehole".
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment.
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations.
	WriteTimeout time.Duration
}

// RedisRegistry is a Registry backed by Redis, for deduplicating metadata
// records across processes. Each record is stored under
// "<ns>:metadata:record:<ident>", with a set of all idents at
// "<ns>:metadata:idents" and one index set per type at
// "<ns>:metadata:type:<type>".
//
// Records read back from Redis carry idents, types and attributes; backing
// document trees stay with the process that parsed them.
type RedisRegistry struct {
	client    *redis.Client
	namespace string
}

// NewRedisRegistry connects to Redis and verifies connectivity with a ping.
func NewRedisRegistry(opts RedisOptions) (*RedisRegistry, error) {
	const op = "NewRedisRegistry"

	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = "borehole"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("parse redis URL: %w", err))
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("connect to redis: %w", err))
	}

	return &RedisRegistry{client: client, namespace: opts.Namespace}, nil
}

// newRedisRegistryWithClient wires an existing client, for tests.
func newRedisRegistryWithClient(client *redis.Client, namespace string) *RedisRegistry {
	if namespace == "" {
		namespace = "borehole"
	}
	return &RedisRegistry{client: client, namespace: namespace}
}

func (r *RedisRegistry) recordKey(ident string) string {
	return fmt.Sprintf("%s:metadata:record:%s", r.namespace, ident)
}

func (r *RedisRegistry) identsKey() string {
	return fmt.Sprintf("%s:metadata:idents", r.namespace)
}

func (r *RedisRegistry) typeKey(mdType string) string {
	return fmt.Sprintf("%s:metadata:type:%s", r.namespace, mdType)
}

// Register stores the record unless its ident is taken, returning the
// canonical record either way.
func (r *RedisRegistry) Register(ctx context.Context, m *Metadata) (*Metadata, error) {
	const op = "RedisRegistry.Register"

	if m == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("record must not be nil"))
	}

	data, err := encodeRecord(m)
	if err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}

	// SETNX decides the dedup race: the first writer for an ident wins and
	// every later Register reads the canonical record back.
	stored, err := r.client.SetNX(ctx, r.recordKey(m.Ident), data, 0).Result()
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("store record: %w", err))
	}
	if !stored {
		return r.Lookup(ctx, m.Ident)
	}

	if err := r.client.SAdd(ctx, r.identsKey(), m.Ident).Err(); err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("index ident: %w", err))
	}
	if err := r.client.SAdd(ctx, r.typeKey(m.Type), m.Ident).Err(); err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("index type: %w", err))
	}
	return m, nil
}

// Lookup returns the record registered under ident.
func (r *RedisRegistry) Lookup(ctx context.Context, ident string) (*Metadata, error) {
	const op = "RedisRegistry.Lookup"

	data, err := r.client.Get(ctx, r.recordKey(ident)).Bytes()
	if err == redis.Nil {
		return nil, geoerr.NewNotFoundError(op,
			fmt.Errorf("%w: %s", geoerr.ErrRecordNotFound, ident))
	}
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("fetch record: %w", err))
	}
	m, err := decodeRecord(data)
	if err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}
	return m, nil
}

// List returns every record of the given type, or all records when mdType
// is empty.
func (r *RedisRegistry) List(ctx context.Context, mdType string) ([]*Metadata, error) {
	const op = "RedisRegistry.List"

	key := r.identsKey()
	if mdType != "" {
		key = r.typeKey(mdType)
	}
	idents, err := r.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("list idents: %w", err))
	}

	records := make([]*Metadata, 0, len(idents))
	for _, ident := range idents {
		m, err := r.Lookup(ctx, ident)
		if err != nil {
			// An ident can linger in an index set after its record was
			// deregistered by another process; skip it.
			if geoerr.IsKind(err, geoerr.KindNotFound) {
				continue
			}
			return nil, err
		}
		records = append(records, m)
	}
	return records, nil
}

// Deregister removes the record registered under ident.
func (r *RedisRegistry) Deregister(ctx context.Context, ident string) error {
	const op = "RedisRegistry.Deregister"

	m, err := r.Lookup(ctx, ident)
	if err != nil {
		if geoerr.IsKind(err, geoerr.KindNotFound) {
			return nil
		}
		return err
	}

	if err := r.client.Del(ctx, r.recordKey(ident)).Err(); err != nil {
		return geoerr.NewInternalError(op, fmt.Errorf("delete record: %w", err))
	}
	if err := r.client.SRem(ctx, r.identsKey(), ident).Err(); err != nil {
		return geoerr.NewInternalError(op, fmt.Errorf("unindex ident: %w", err))
	}
	if err := r.client.SRem(ctx, r.typeKey(m.Type), ident).Err(); err != nil {
		return geoerr.NewInternalError(op, fmt.Errorf("unindex type: %w", err))
	}
	return nil
}

// Len returns the number of registered records.
func (r *RedisRegistry) Len(ctx context.Context) (int, error) {
	n, err := r.client.SCard(ctx, r.identsKey()).Result()
	if err != nil {
		return 0, geoerr.NewInternalError("RedisRegistry.Len",
			fmt.Errorf("count idents: %w", err))
	}
	return int(n), nil
}

// Close closes the Redis connection.
func (r *RedisRegistry) Close() error {
	return r.client.Close()
}
