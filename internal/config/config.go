package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/example/trinity/internal/core/rotation"
)

const (
	// DirName is the per-project configuration directory.
	DirName = ".trinity"
	// FileName is the configuration file inside DirName.
	FileName = "config.yaml"
	// EnvPrefix prefixes every environment override (TRINITY_INDEX, ...).
	EnvPrefix = "TRINITY"

	DefaultIndexPath    = "docs/sprints/INDEX.md"
	DefaultActivityPath = "ACTIVITY.md"
	DefaultArchiveDir   = "docs/archive"
)

// Configuration keys shared by the file, the environment and the CLI flags.
const (
	KeyIndex       = "index"
	KeyActivity    = "activity"
	KeyArchiveDir  = "archive_dir"
	KeyAuditDB     = "audit_db"
	KeyActor       = "actor"
	KeyVerbose     = "verbose"
	KeyThreshold   = "rotation.threshold"
	KeyHeaderLines = "rotation.header_lines"
	KeyTailLines   = "rotation.tail_lines"
)

// RotationConfig mirrors rotation.Policy in the config file.
type RotationConfig struct {
	Threshold   int `mapstructure:"threshold" yaml:"threshold"`
	HeaderLines int `mapstructure:"header_lines" yaml:"header_lines"`
	TailLines   int `mapstructure:"tail_lines" yaml:"tail_lines"`
}

// Config holds the file locations and policies every trinity command shares.
// Relative paths are resolved against ProjectDir by Load.
type Config struct {
	ProjectDir   string         `mapstructure:"-" yaml:"-"`
	IndexPath    string         `mapstructure:"index" yaml:"index"`
	ActivityPath string         `mapstructure:"activity" yaml:"activity"`
	ArchiveDir   string         `mapstructure:"archive_dir" yaml:"archive_dir"`
	AuditDBPath  string         `mapstructure:"audit_db" yaml:"audit_db,omitempty"`
	Actor        string         `mapstructure:"actor" yaml:"actor,omitempty"`
	Verbose      bool           `mapstructure:"verbose" yaml:"-"`
	Rotation     RotationConfig `mapstructure:"rotation" yaml:"rotation"`
}

// Default returns the conventional layout rooted at projectDir.
func Default(projectDir string) *Config {
	policy := rotation.DefaultPolicy()
	cfg := &Config{
		ProjectDir:   projectDir,
		IndexPath:    DefaultIndexPath,
		ActivityPath: DefaultActivityPath,
		ArchiveDir:   DefaultArchiveDir,
		Rotation: RotationConfig{
			Threshold:   policy.Threshold,
			HeaderLines: policy.HeaderLines,
			TailLines:   policy.TailLines,
		},
	}
	cfg.resolvePaths()
	return cfg
}

// Path returns the config file location for projectDir.
func Path(projectDir string) string {
	return filepath.Join(projectDir, DirName, FileName)
}

// Load reads configuration for projectDir.
// Resolution order, lowest first: defaults, .trinity/config.yaml,
// TRINITY_* environment variables, then flags that were set explicitly.
// flags may be nil.
func Load(projectDir string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default("")
	v.SetDefault(KeyIndex, def.IndexPath)
	v.SetDefault(KeyActivity, def.ActivityPath)
	v.SetDefault(KeyArchiveDir, def.ArchiveDir)
	v.SetDefault(KeyAuditDB, "")
	v.SetDefault(KeyActor, "")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyThreshold, def.Rotation.Threshold)
	v.SetDefault(KeyHeaderLines, def.Rotation.HeaderLines)
	v.SetDefault(KeyTailLines, def.Rotation.TailLines)

	path := Path(projectDir)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(KeyVerbose, EnvPrefix+"_VERBOSE", EnvPrefix+"_DEBUG"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if flags != nil {
		for _, key := range []string{KeyIndex, KeyActivity, KeyArchiveDir, KeyAuditDB, KeyActor, KeyVerbose} {
			flag := flags.Lookup(flagName(key))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ProjectDir = projectDir
	cfg.normalize()
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// flagName maps a config key to its CLI flag name (archive_dir -> archive-dir).
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.IndexPath == "" {
		return fmt.Errorf("index path is required")
	}
	if c.ActivityPath == "" {
		return fmt.Errorf("activity path is required")
	}
	if c.ArchiveDir == "" {
		return fmt.Errorf("archive dir is required")
	}
	return c.RotationPolicy().Validate()
}

// RotationPolicy converts the rotation settings for the planner.
func (c *Config) RotationPolicy() rotation.Policy {
	return rotation.Policy{
		Threshold:   c.Rotation.Threshold,
		HeaderLines: c.Rotation.HeaderLines,
		TailLines:   c.Rotation.TailLines,
	}
}

// AuditEnabled reports whether field changes are recorded in SQLite.
func (c *Config) AuditEnabled() bool {
	return c.AuditDBPath != ""
}

// Render returns the configuration as config.yaml content, with paths
// written relative to ProjectDir where possible.
func Render(c *Config) ([]byte, error) {
	out := *c
	out.IndexPath = relativePath(c.ProjectDir, c.IndexPath)
	out.ActivityPath = relativePath(c.ProjectDir, c.ActivityPath)
	out.ArchiveDir = relativePath(c.ProjectDir, c.ArchiveDir)
	out.AuditDBPath = relativePath(c.ProjectDir, c.AuditDBPath)

	body, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	header := "# trinity configuration. Environment variables (TRINITY_*) and flags override these values.\n"
	return append([]byte(header), body...), nil
}

func (c *Config) normalize() {
	c.IndexPath = strings.TrimSpace(c.IndexPath)
	c.ActivityPath = strings.TrimSpace(c.ActivityPath)
	c.ArchiveDir = strings.TrimSpace(c.ArchiveDir)
	c.AuditDBPath = strings.TrimSpace(c.AuditDBPath)
	c.Actor = strings.TrimSpace(c.Actor)
}

func (c *Config) resolvePaths() {
	c.IndexPath = resolvePath(c.ProjectDir, c.IndexPath)
	c.ActivityPath = resolvePath(c.ProjectDir, c.ActivityPath)
	c.ArchiveDir = resolvePath(c.ProjectDir, c.ArchiveDir)
	c.AuditDBPath = resolvePath(c.ProjectDir, c.AuditDBPath)
}

func relativePath(base, path string) string {
	if base == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func resolvePath(base, candidate string) string {
	if candidate == "" {
		return ""
	}
	if filepath.IsAbs(candidate) || base == "" {
		return filepath.Clean(candidate)
	}
	return filepath.Clean(filepath.Join(base, candidate))
}
