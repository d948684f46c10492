// Package config provides loading and parsing of borehole.yaml configuration
// files. Toolkit configuration covers the metadata registry backend, analysis
// defaults and plot rendering defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents a borehole.yaml configuration file.
type Config struct {
	// Registry selects and configures the metadata registry backend.
	Registry *RegistryConfig `yaml:"registry,omitempty"`

	// Analysis holds exploratory-analysis defaults.
	Analysis *AnalysisConfig `yaml:"analysis,omitempty"`

	// Plot holds rendering defaults.
	Plot *PlotConfig `yaml:"plot,omitempty"`
}

// RegistryConfig selects the metadata registry backend.
type RegistryConfig struct {
	// Backend is "memory", "redis" or "etcd". Default: "memory".
	Backend string `yaml:"backend,omitempty"`

	// Namespace prefixes every key the shared backends write.
	// Default: "borehole".
	Namespace string `yaml:"namespace,omitempty"`

	// Redis configures the redis backend.
	Redis *RedisConfig `yaml:"redis,omitempty"`

	// Etcd configures the etcd backend.
	Etcd *EtcdConfig `yaml:"etcd,omitempty"`
}

// RedisConfig configures the redis registry backend.
type RedisConfig struct {
	// URL is the Redis connection string.
	// Default: "redis://localhost:6379".
	URL string `yaml:"url,omitempty"`

	// ConnectTimeout bounds connection establishment.
	// Format: Go duration string (e.g. "5s"). Default: 5s.
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
}

// EtcdConfig configures the etcd registry backend.
type EtcdConfig struct {
	// Endpoints lists the etcd cluster members.
	// Default: ["localhost:2379"].
	Endpoints []string `yaml:"endpoints,omitempty"`

	// TTL is the record lease in seconds; zero keeps records until
	// deregistered.
	TTL int `yaml:"ttl,omitempty"`
}

// AnalysisConfig holds exploratory-analysis defaults.
type AnalysisConfig struct {
	// CorrelationThreshold masks correlation magnitudes below this value
	// when building connection structure. Default: 0.4.
	CorrelationThreshold float64 `yaml:"correlation_threshold,omitempty"`

	// Embedding selects the 2-D embedding method, "mds" or "pca".
	// Default: "mds".
	Embedding string `yaml:"embedding,omitempty"`

	// MaxClusterDistance is the correlation-distance cut for clustering.
	// Default: 0.6.
	MaxClusterDistance float64 `yaml:"max_cluster_distance,omitempty"`
}

// PlotConfig holds rendering defaults.
type PlotConfig struct {
	// DPI is the raster resolution for saved figures. Default: 96.
	DPI int `yaml:"dpi,omitempty"`

	// CellWidthInches is the width of one grid cell. Default: 3.
	CellWidthInches float64 `yaml:"cell_width_inches,omitempty"`

	// CellHeightInches is the height of one grid cell. Default: 3.
	CellHeightInches float64 `yaml:"cell_height_inches,omitempty"`

	// PaletteDivisions is the number of colour steps in diverging
	// palettes. Default: 11.
	PaletteDivisions int `yaml:"palette_divisions,omitempty"`
}

// GetBackend returns the configured registry backend or the default value.
func (r *RegistryConfig) GetBackend() string {
	if r == nil || r.Backend == "" {
		return "memory"
	}
	return r.Backend
}

// GetNamespace returns the configured key namespace or the default value.
func (r *RegistryConfig) GetNamespace() string {
	if r == nil || r.Namespace == "" {
		return "borehole"
	}
	return r.Namespace
}

// GetURL returns the configured Redis URL or the default value.
func (c *RedisConfig) GetURL() string {
	if c == nil || c.URL == "" {
		return "redis://localhost:6379"
	}
	return c.URL
}

// GetConnectTimeout parses the connect timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (c *RedisConfig) GetConnectTimeout() time.Duration {
	if c == nil || c.ConnectTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(c.ConnectTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// GetEndpoints returns the configured etcd endpoints or the default value.
func (c *EtcdConfig) GetEndpoints() []string {
	if c == nil || len(c.Endpoints) == 0 {
		return []string{"localhost:2379"}
	}
	return c.Endpoints
}

// GetTTL returns the configured record lease in seconds, or zero.
func (c *EtcdConfig) GetTTL() int {
	if c == nil || c.TTL < 0 {
		return 0
	}
	return c.TTL
}

// GetCorrelationThreshold returns the configured threshold or the default value.
func (a *AnalysisConfig) GetCorrelationThreshold() float64 {
	if a == nil || a.CorrelationThreshold <= 0 {
		return 0.4
	}
	return a.CorrelationThreshold
}

// GetEmbedding returns the configured embedding method or the default value.
func (a *AnalysisConfig) GetEmbedding() string {
	if a == nil || a.Embedding == "" {
		return "mds"
	}
	return a.Embedding
}

// GetMaxClusterDistance returns the configured clustering cut or the default value.
func (a *AnalysisConfig) GetMaxClusterDistance() float64 {
	if a == nil || a.MaxClusterDistance <= 0 {
		return 0.6
	}
	return a.MaxClusterDistance
}

// GetDPI returns the configured raster resolution or the default value.
func (p *PlotConfig) GetDPI() int {
	if p == nil || p.DPI <= 0 {
		return 96
	}
	return p.DPI
}

// GetCellWidthInches returns the configured cell width or the default value.
func (p *PlotConfig) GetCellWidthInches() float64 {
	if p == nil || p.CellWidthInches <= 0 {
		return 3
	}
	return p.CellWidthInches
}

// GetCellHeightInches returns the configured cell height or the default value.
func (p *PlotConfig) GetCellHeightInches() float64 {
	if p == nil || p.CellHeightInches <= 0 {
		return 3
	}
	return p.CellHeightInches
}

// GetPaletteDivisions returns the configured palette steps or the default value.
func (p *PlotConfig) GetPaletteDivisions() int {
	if p == nil || p.PaletteDivisions <= 0 {
		return 11
	}
	return p.PaletteDivisions
}

// Load reads and parses a borehole.yaml file from the given path.
// If the path is a directory, it looks for borehole.yaml or borehole.yml in
// that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	var configPath string
	if info.IsDir() {
		yamlPath := filepath.Join(path, "borehole.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "borehole.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no borehole.yaml or borehole.yml found in %s", path)
			}
		}
	} else {
		configPath = path
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// LoadFromDir searches for borehole.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		config, err := Load(absDir)
		if err == nil {
			return config, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no borehole.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// LoadFromCurrentDir loads borehole.yaml from the current working directory.
func LoadFromCurrentDir() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadFromDir(cwd)
}
