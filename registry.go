package borehole

import (
	"context"
	"fmt"

	"github.com/geosiss/borehole/config"
	"github.com/geosiss/borehole/geoerr"
	"github.com/geosiss/borehole/metadata"
)

// OpenRegistry opens the metadata registry the configuration selects:
// "memory" (the default), "redis" or "etcd". The caller owns the returned
// registry and must Close it.
func OpenRegistry(ctx context.Context, cfg *config.Config) (metadata.Registry, error) {
	const op = "OpenRegistry"

	var reg *config.RegistryConfig
	if cfg != nil {
		reg = cfg.Registry
	}

	switch backend := reg.GetBackend(); backend {
	case "memory":
		return metadata.NewMemoryRegistry(), nil

	case "redis":
		var redisCfg *config.RedisConfig
		if reg != nil {
			redisCfg = reg.Redis
		}
		return metadata.NewRedisRegistry(metadata.RedisOptions{
			URL:            redisCfg.GetURL(),
			Namespace:      reg.GetNamespace(),
			ConnectTimeout: redisCfg.GetConnectTimeout(),
		})

	case "etcd":
		var etcdCfg *config.EtcdConfig
		if reg != nil {
			etcdCfg = reg.Etcd
		}
		return metadata.NewEtcdRegistry(metadata.EtcdOptions{
			Endpoints: etcdCfg.GetEndpoints(),
			Namespace: reg.GetNamespace(),
			TTL:       etcdCfg.GetTTL(),
		})

	default:
		return nil, geoerr.NewConfigurationError(op,
			fmt.Errorf("%w: unknown registry backend %q",
				geoerr.ErrInvalidConfig, backend))
	}
}
