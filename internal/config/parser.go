// Package config provides configuration file parsing.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/michaelklose/remote-cli-runner/internal/models"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// DefaultFileName is the per-user config file looked up in the home directory.
const DefaultFileName = ".remote-cli-runner.ini"

// defaultPort is used when the [remote] section carries no port key.
const defaultPort = 22

// Sentinel errors for the configuration failure classes. Callers
// classify with errors.Is; every one of them is terminal for the
// invocation.
var (
	ErrConfigMissing  = errors.New("config file not found")
	ErrSectionMissing = errors.New("[remote] section missing")
	ErrFieldMissing   = errors.New("missing values in [remote] section")
	ErrPortInvalid    = errors.New("invalid port in config")
)

// DefaultPath returns the default config location, ~/.remote-cli-runner.ini.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, DefaultFileName), nil
}

// Parser handles configuration file parsing.
type Parser struct {
	v *viper.Viper
}

// NewParser creates a new configuration parser.
func NewParser() *Parser {
	v := viper.New()
	v.SetConfigType("ini")
	return &Parser{v: v}
}

// LoadFile loads configuration from a file path.
func (p *Parser) LoadFile(path string) (*models.RemoteConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return p.load(data)
}

// LoadReader loads configuration from a string (useful for testing).
func (p *Parser) LoadReader(content string) (*models.RemoteConfig, error) {
	return p.load([]byte(content))
}

func (p *Parser) load(data []byte) (*models.RemoteConfig, error) {
	if err := p.v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return p.parse(data)
}

func (p *Parser) parse(raw []byte) (*models.RemoteConfig, error) {
	if !p.hasRemoteSection(raw) {
		return nil, ErrSectionMissing
	}

	cfg := &models.RemoteConfig{
		Host: p.v.GetString("remote.host"),
		User: p.v.GetString("remote.user"),
		Key:  p.expandEnv(p.v.GetString("remote.key")),
	}

	// Report every absent field, not just the first.
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"host", cfg.Host},
		{"user", cfg.User},
		{"key", cfg.Key},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrFieldMissing, strings.Join(missing, ", "))
	}

	// Viper's GetInt would cast garbage to 0, so the port is parsed by
	// hand to keep the port-specific diagnostic.
	portStr := p.v.GetString("remote.port")
	if portStr == "" {
		cfg.Port = defaultPort
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrPortInvalid, portStr)
		}
		cfg.Port = port
	}

	return cfg, nil
}

// hasRemoteSection checks for the [remote] header in the raw document.
// Viper's INI codec drops sections that carry no keys, so an empty
// [remote] section would otherwise look absent and report the wrong
// failure class.
func (p *Parser) hasRemoteSection(raw []byte) bool {
	f, err := ini.Load(raw)
	if err != nil {
		return p.v.IsSet("remote")
	}
	_, err = f.GetSection("remote")
	return err == nil
}

// expandEnv expands environment variables in the format ${VAR} or $VAR.
// Only the key path is expanded; host and user are taken literally, as
// the original tool did.
func (p *Parser) expandEnv(s string) string {
	return os.ExpandEnv(s)
}
