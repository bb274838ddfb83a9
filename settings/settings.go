package settings

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/bitrise-client/bitrise-client/errs"
	"github.com/bitrise-client/bitrise-client/slug"
)

const (
	DefaultHost         = "https://api.bitrise.io"
	DefaultRestEndpoint = "v0.1"

	envPrefix = "bitrise_client"
)

// FS is the filesystem used for every settings read and write. Tests swap it
// for an in-memory one.
var FS = &afero.Afero{Fs: afero.NewOsFs()}

// Config is used to represent the current state of a CLI instance.
type Config struct {
	Host         string       `yaml:"host,omitempty"`
	RestEndpoint string       `yaml:"rest_endpoint,omitempty"`
	Token        string       `yaml:"token"`
	AppSlug      string       `yaml:"app_slug"`
	Debug        bool         `yaml:"-"`
	FileUsed     string       `yaml:"-"`
	HTTPClient   *http.Client `yaml:"-"`
}

// Load will read the config from the user's disk and then evaluate possible configuration from the environment.
func (cfg *Config) Load() error {
	if err := cfg.LoadFromDisk(); err != nil {
		return err
	}

	cfg.LoadFromEnv(envPrefix)

	return nil
}

// LoadFromDisk is used to read config from the user's disk and deserialize the YAML into our runtime config.
func (cfg *Config) LoadFromDisk() error {
	path := filepath.Join(SettingsPath(), configFilename())

	if err := ensureSettingsFileExists(path); err != nil {
		return err
	}

	cfg.FileUsed = path

	content, err := FS.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(content, cfg)
}

// WriteToDisk will write the runtime config instance to disk by serializing the YAML
func (cfg *Config) WriteToDisk() error {
	if cfg.FileUsed == "" {
		cfg.FileUsed = filepath.Join(SettingsPath(), configFilename())
		if err := ensureSettingsFileExists(cfg.FileUsed); err != nil {
			return err
		}
	}

	enc, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return FS.WriteFile(cfg.FileUsed, enc, 0600)
}

// LoadFromEnv will read from environment variables of the given prefix for host, token and app slug.
func (cfg *Config) LoadFromEnv(prefix string) {
	if host := ReadFromEnv(prefix, "host"); host != "" {
		cfg.Host = host
	}

	if token := ReadFromEnv(prefix, "token"); token != "" {
		cfg.Token = token
	}

	if appSlug := ReadFromEnv(prefix, "app_slug"); appSlug != "" {
		cfg.AppSlug = appSlug
	}
}

// Validate checks that both credentials are present. It never touches the
// network.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Token) == "" || strings.TrimSpace(cfg.AppSlug) == "" {
		return errs.Configurationf("Please set token and app_slug in %s or run `bitrise-client configure`", cfg.displayPath())
	}
	if _, err := slug.ParseApp(cfg.AppSlug); err != nil {
		return errs.Configuration(err)
	}
	return nil
}

// Client returns the configured HTTP client or a default one with a timeout.
func (cfg *Config) Client() *http.Client {
	if cfg.HTTPClient != nil {
		return cfg.HTTPClient
	}
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}

// HostOrDefault returns the API host, falling back to the public Bitrise API.
func (cfg *Config) HostOrDefault() string {
	if cfg.Host == "" {
		return DefaultHost
	}
	return cfg.Host
}

// RestEndpointOrDefault returns the API version prefix.
func (cfg *Config) RestEndpointOrDefault() string {
	if cfg.RestEndpoint == "" {
		return DefaultRestEndpoint
	}
	return cfg.RestEndpoint
}

func (cfg *Config) displayPath() string {
	if cfg.FileUsed != "" {
		return cfg.FileUsed
	}
	return filepath.Join(SettingsPath(), configFilename())
}

// ReadFromEnv takes a prefix and field to search the environment for after capitalizing and joining them with an underscore.
func ReadFromEnv(prefix, field string) string {
	name := strings.Join([]string{prefix, field}, "_")
	return os.Getenv(strings.ToUpper(name))
}

// configFilename returns the name of the cli config file
func configFilename() string {
	return "cli.yml"
}

// SettingsPath returns the path of the CLI settings directory
func SettingsPath() string {
	home, _ := os.UserHomeDir()
	return path.Join(home, ".bitrise-client")
}

// ensureSettingsFileExists does just that.
func ensureSettingsFileExists(path string) error {
	_, err := FS.Stat(path)

	if err == nil {
		return nil
	}

	if !os.IsNotExist(err) {
		// Filesystem error
		return err
	}

	dir := filepath.Dir(path)

	if err = FS.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := FS.Create(path)
	if err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return FS.Chmod(path, 0600)
}
