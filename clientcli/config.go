package clientcli

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/sagarc03/roster"
)

// DefaultEndpoint is the default server endpoint URL.
const DefaultEndpoint = "http://localhost:3000"

// Output formats a profile or config can select.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Profile is one named server in the profile file.
type Profile struct {
	Name     string `yaml:"name"`
	Endpoint string `yaml:"endpoint"`
	// Kind is used by record commands that name no kind.
	Kind string `yaml:"kind,omitempty"`
	// Output is "table" or "json". Empty means table.
	Output  string `yaml:"output,omitempty"`
	Default bool   `yaml:"default,omitempty"`
}

// Validate checks the profile before it is stored.
func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if err := ConfigFromProfile(&p).Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}

// ConfigFile is the profile file, ~/.roster/config.yaml by default.
type ConfigFile struct {
	Profiles []Profile `yaml:"profiles"`
}

func (c *ConfigFile) index(name string) int {
	return slices.IndexFunc(c.Profiles, func(p Profile) bool { return p.Name == name })
}

// Profile returns the named profile, or the default profile for "".
func (c *ConfigFile) Profile(name string) (*Profile, error) {
	if name == "" {
		return c.DefaultProfile()
	}
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}

	i := c.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	return &c.Profiles[i], nil
}

// DefaultProfile returns the profile marked default, else the first one.
func (c *ConfigFile) DefaultProfile() (*Profile, error) {
	if len(c.Profiles) == 0 {
		return nil, ErrNoProfiles
	}
	if i := slices.IndexFunc(c.Profiles, func(p Profile) bool { return p.Default }); i >= 0 {
		return &c.Profiles[i], nil
	}
	return &c.Profiles[0], nil
}

// Put stores p, replacing a profile of the same name.
// It reports whether the profile is new. A replaced profile keeps its
// position and its default mark.
func (c *ConfigFile) Put(p Profile) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}

	if i := c.index(p.Name); i >= 0 {
		p.Default = c.Profiles[i].Default
		c.Profiles[i] = p
		return false, nil
	}

	c.Profiles = append(c.Profiles, p)
	if p.Default {
		return true, c.SetDefault(p.Name)
	}
	return true, nil
}

// Remove deletes the named profile.
func (c *ConfigFile) Remove(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	c.Profiles = slices.Delete(c.Profiles, i, i+1)
	return nil
}

// SetDefault marks the named profile as the only default.
func (c *ConfigFile) SetDefault(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}
	for j := range c.Profiles {
		c.Profiles[j].Default = j == i
	}
	return nil
}

// Names returns the profile names in file order.
func (c *ConfigFile) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		names = append(names, p.Name)
	}
	return names
}

// Save writes the file with owner-only permissions, creating its directory.
func (c *ConfigFile) Save(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// LoadConfigFile reads a profile file. A missing file is an error that
// matches os.ErrNotExist.
func LoadConfigFile(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(filepath.Clean(path)) //#nosec G304 -- path is user-provided config file
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &file, nil
}

// OpenConfigFile is LoadConfigFile, except a missing file yields an empty one.
func OpenConfigFile(path string) (*ConfigFile, error) {
	file, err := LoadConfigFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &ConfigFile{}, nil
	}
	return file, err
}

// DefaultConfigPath returns ~/.roster/config.yaml, or "" without a home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".roster", "config.yaml")
}

// Config is the resolved client configuration after profile, env and flag merging.
type Config struct {
	Endpoint string
	// Kind is the fallback kind for record commands.
	Kind   string
	Output string
}

// Validate checks the endpoint is an absolute http(s) URL and that Kind and
// Output, when set, are usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, c.Endpoint)
	}

	if c.Kind != "" {
		if err := validateKind(c.Kind); err != nil {
			return err
		}
	}

	switch c.Output {
	case "", OutputTable, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, c.Output)
	}
	return nil
}

// WithDefaults returns a copy with the default endpoint and table output filled in.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Output == "" {
		cfg.Output = OutputTable
	}
	return &cfg
}

// JSONOutput reports whether the config asks for JSON output.
func (c *Config) JSONOutput() bool {
	return c.Output == OutputJSON
}

// ResolveKind splits the kind off the front of record command arguments.
// A leading argument that is a valid kind name is taken as the kind; ids and
// key=value pairs never are. Otherwise the configured Kind is used.
func (c *Config) ResolveKind(args []string) (string, []string, error) {
	if len(args) > 0 && roster.IsValidKindName(args[0]) {
		return args[0], args[1:], nil
	}
	if c.Kind == "" {
		return "", nil, ErrNoKind
	}
	return c.Kind, args, nil
}

// ConfigFromProfile returns the settings a profile carries.
func ConfigFromProfile(p *Profile) *Config {
	if p == nil {
		return &Config{}
	}
	return &Config{Endpoint: p.Endpoint, Kind: p.Kind, Output: p.Output}
}

// ConfigFromEnv reads ROSTER_ENDPOINT, ROSTER_KIND and ROSTER_OUTPUT.
func ConfigFromEnv() *Config {
	return &Config{
		Endpoint: os.Getenv("ROSTER_ENDPOINT"),
		Kind:     os.Getenv("ROSTER_KIND"),
		Output:   os.Getenv("ROSTER_OUTPUT"),
	}
}

// ProfileFromEnv returns ROSTER_PROFILE.
func ProfileFromEnv() string {
	return os.Getenv("ROSTER_PROFILE")
}

// ConfigPathFromEnv returns ROSTER_CLIENT_CONFIG.
func ConfigPathFromEnv() string {
	return os.Getenv("ROSTER_CLIENT_CONFIG")
}

// MergeConfig layers configs left to right. Later non-empty values win.
func MergeConfig(configs ...*Config) *Config {
	merged := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		override(&merged.Endpoint, cfg.Endpoint)
		override(&merged.Kind, cfg.Kind)
		override(&merged.Output, cfg.Output)
	}
	return merged
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
