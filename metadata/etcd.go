package metadata

import (
	"context"
	"fmt"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/geosiss/borehole/geoerr"
)

// EtcdOptions configures the etcd-backed registry.
type EtcdOptions struct {
	// Endpoints lists the etcd cluster members (e.g. "localhost:2379").
	Endpoints []string

	// Namespace is the leading key segment for every record this registry
	// writes. Defaults to "borehole".
	Namespace string

	// TTL, when positive, attaches a lease of that many seconds to every
	// registered record so transient records expire on their own. Zero
	// keeps records until deregistered.
	TTL int

	// DialTimeout bounds connection establishment. Defaults to 5s.
	DialTimeout time.Duration
}

// EtcdRegistry is a Registry backed by an etcd cluster, for deduplicating
// metadata records across processes. Records live under
// "/<ns>/metadata/<type>/<ident>" so a prefix scan per type serves List.
//
// Records read back from etcd carry idents, types and attributes; backing
// document trees stay with the process that parsed them.
//
// Thread-safety: all methods are safe for concurrent use.
type EtcdRegistry struct {
	client    *clientv3.Client
	namespace string
	ttl       int
}

// NewEtcdRegistry connects to the etcd cluster and verifies connectivity.
func NewEtcdRegistry(opts EtcdOptions) (*EtcdRegistry, error) {
	const op = "NewEtcdRegistry"

	if len(opts.Endpoints) == 0 {
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("%w: etcd endpoints cannot be empty", geoerr.ErrInvalidConfig))
	}
	if opts.Namespace == "" {
		opts.Namespace = "borehole"
	}
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = 5 * time.Second
	}

	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
	})
	if err != nil {
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("create etcd client: %w", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.DialTimeout)
	defer cancel()
	if _, err := cli.Get(ctx, "health-check"); err != nil && err != context.DeadlineExceeded {
		cli.Close()
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("etcd health check failed: %w", err))
	}

	return &EtcdRegistry{
		client:    cli,
		namespace: opts.Namespace,
		ttl:       opts.TTL,
	}, nil
}

// recordKey builds the etcd key for a record: /namespace/metadata/type/ident.
func (r *EtcdRegistry) recordKey(mdType, ident string) string {
	return fmt.Sprintf("/%s/metadata/%s/%s", r.namespace, mdType, ident)
}

// prefix returns the scan prefix for a type, or for all records when mdType
// is empty.
func (r *EtcdRegistry) prefix(mdType string) string {
	if mdType == "" {
		return fmt.Sprintf("/%s/metadata/", r.namespace)
	}
	return fmt.Sprintf("/%s/metadata/%s/", r.namespace, mdType)
}

// Register stores the record unless its ident is taken, returning the
// canonical record either way. The first-writer-wins decision runs as a
// single etcd transaction so concurrent registrations of the same ident
// cannot both claim it.
func (r *EtcdRegistry) Register(ctx context.Context, m *Metadata) (*Metadata, error) {
	const op = "EtcdRegistry.Register"

	if m == nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("record must not be nil"))
	}

	data, err := encodeRecord(m)
	if err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}

	var putOpts []clientv3.OpOption
	if r.ttl > 0 {
		lease, err := r.client.Grant(ctx, int64(r.ttl))
		if err != nil {
			return nil, geoerr.NewInternalError(op, fmt.Errorf("create lease: %w", err))
		}
		putOpts = append(putOpts, clientv3.WithLease(lease.ID))
	}

	key := r.recordKey(m.Type, m.Ident)
	resp, err := r.client.Txn(ctx).
		If(clientv3.Compare(clientv3.CreateRevision(key), "=", 0)).
		Then(clientv3.OpPut(key, string(data), putOpts...)).
		Else(clientv3.OpGet(key)).
		Commit()
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("register record: %w", err))
	}
	if resp.Succeeded {
		return m, nil
	}

	kvs := resp.Responses[0].GetResponseRange().Kvs
	if len(kvs) == 0 {
		// The canonical record expired between the compare and the read.
		return m, nil
	}
	canonical, err := decodeRecord(kvs[0].Value)
	if err != nil {
		return nil, geoerr.NewInternalError(op, err)
	}
	return canonical, nil
}

// Lookup returns the record registered under ident. The key embeds the
// record type, so lookup by bare ident scans the metadata prefix.
func (r *EtcdRegistry) Lookup(ctx context.Context, ident string) (*Metadata, error) {
	const op = "EtcdRegistry.Lookup"

	resp, err := r.client.Get(ctx, r.prefix(""), clientv3.WithPrefix())
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("scan records: %w", err))
	}
	suffix := "/" + ident
	for _, kv := range resp.Kvs {
		if !strings.HasSuffix(string(kv.Key), suffix) {
			continue
		}
		m, err := decodeRecord(kv.Value)
		if err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}
		return m, nil
	}
	return nil, geoerr.NewNotFoundError(op,
		fmt.Errorf("%w: %s", geoerr.ErrRecordNotFound, ident))
}

// List returns every record of the given type, or all records when mdType
// is empty.
func (r *EtcdRegistry) List(ctx context.Context, mdType string) ([]*Metadata, error) {
	const op = "EtcdRegistry.List"

	resp, err := r.client.Get(ctx, r.prefix(mdType), clientv3.WithPrefix())
	if err != nil {
		return nil, geoerr.NewInternalError(op, fmt.Errorf("scan records: %w", err))
	}
	records := make([]*Metadata, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		m, err := decodeRecord(kv.Value)
		if err != nil {
			return nil, geoerr.NewInternalError(op, err)
		}
		records = append(records, m)
	}
	return records, nil
}

// Deregister removes the record registered under ident.
func (r *EtcdRegistry) Deregister(ctx context.Context, ident string) error {
	const op = "EtcdRegistry.Deregister"

	m, err := r.Lookup(ctx, ident)
	if err != nil {
		if geoerr.IsKind(err, geoerr.KindNotFound) {
			return nil
		}
		return err
	}
	if _, err := r.client.Delete(ctx, r.recordKey(m.Type, m.Ident)); err != nil {
		return geoerr.NewInternalError(op, fmt.Errorf("delete record: %w", err))
	}
	return nil
}

// Len returns the number of registered records.
func (r *EtcdRegistry) Len(ctx context.Context) (int, error) {
	resp, err := r.client.Get(ctx, r.prefix(""),
		clientv3.WithPrefix(), clientv3.WithCountOnly())
	if err != nil {
		return 0, geoerr.NewInternalError("EtcdRegistry.Len",
			fmt.Errorf("count records: %w", err))
	}
	return int(resp.Count), nil
}

// Close closes the etcd client.
func (r *EtcdRegistry) Close() error {
	return r.client.Close()
}
