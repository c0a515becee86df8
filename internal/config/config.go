package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/cf-switch/internal/fsutil"
	"github.com/spf13/afero"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("invalid settings file")

// 기본값.
const (
	DefaultStorePath     = "~/.cf-switch.json"
	DefaultEnvPath       = "~/.cloudflare.env"
	DefaultClient        = "flarectl"
	DefaultLamderaTarget = "apps.lamdera.app"
)

var supportedShells = map[string]bool{"": true, "bash": true, "zsh": true, "sh": true, "fish": true}

// Config는 cf-switch 설정 파일의 최상위 구조체다. 모든 키는 선택이다.
type Config struct {
	Version       int    `toml:"version"`
	StorePath     string `toml:"store_path"`
	EnvPath       string `toml:"env_path"`
	Client        string `toml:"client"`
	Shell         string `toml:"shell"`
	LamderaTarget string `toml:"lamdera_target"`
}

// Default는 설정 파일이 없을 때 쓰는 기본 설정을 반환한다.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// DefaultPath는 home 기준 설정 파일 경로를 반환한다.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "cf-switch", "config.toml")
}

// Load는 config.toml을 파싱하여 Config를 반환한다. 파일이 없으면 기본값을 반환한다.
func Load(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("config.Load: %w: unknown keys: %s", ErrConfig, strings.Join(keys, ", "))
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}

// ExpandPaths는 store_path와 env_path의 ~를 home으로 치환한다.
func (c *Config) ExpandPaths(home string) {
	c.StorePath = fsutil.ExpandHome(c.StorePath, home)
	c.EnvPath = fsutil.ExpandHome(c.EnvPath, home)
}

// Save는 Config를 TOML로 path에 원자적으로 저장한다 (0600 권한).
func Save(fsys afero.Fs, path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	if err := fsutil.WriteFileAtomic(fsys, path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// Keys는 Set이 받는 설정 키 목록이다.
var Keys = []string{"store_path", "env_path", "client", "shell", "lamdera_target"}

// Set은 key 하나를 value로 바꾸고 결과를 검증한다. 빈 value는 기본값으로 되돌린다.
func (c *Config) Set(key, value string) error {
	switch key {
	case "store_path":
		c.StorePath = value
	case "env_path":
		c.EnvPath = value
	case "client":
		c.Client = value
	case "shell":
		c.Shell = value
	case "lamdera_target":
		c.LamderaTarget = value
	default:
		return fmt.Errorf("config.Set: %w: unknown key %q (%s)", ErrConfig, key, strings.Join(Keys, ", "))
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return fmt.Errorf("config.Set: %w", err)
	}
	return nil
}

// Update는 설정 파일을 읽어 key를 바꾼 뒤 다시 저장한다. 파일이 없으면 기본값에서 시작한다.
// 저장된 파일은 TOML 인코더 출력이므로 템플릿의 주석은 남지 않는다.
func Update(fsys afero.Fs, path, key, value string) (*Config, error) {
	cfg, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Set(key, value); err != nil {
		return nil, err
	}
	if err := Save(fsys, path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Template은 주석이 달린 설정 파일 템플릿이다. 모든 값이 기본값이다.
const Template = `# cf-switch settings. Every key is optional.
version = 1

# Profile store and credential env file.
store_path = "~/.cf-switch.json"
env_path = "~/.cloudflare.env"

# Cloudflare CLI used by purge and add-lamdera-app.
client = "flarectl"

# Export dialect: bash, zsh, sh or fish. Empty means detect from $SHELL.
shell = ""

# CNAME target for add-lamdera-app.
lamdera_target = "apps.lamdera.app"
`

// WriteTemplate은 path에 Template을 쓴다. 파일이 이미 있으면 force일 때만 덮어쓴다.
func WriteTemplate(fsys afero.Fs, path string, force bool) error {
	if exists, _ := afero.Exists(fsys, path); exists && !force {
		return fmt.Errorf("config.WriteTemplate: %s already exists (use --force to overwrite)", path)
	}
	if err := fsutil.WriteFileAtomic(fsys, path, []byte(Template), 0o600); err != nil {
		return fmt.Errorf("config.WriteTemplate: %w", err)
	}
	return nil
}

// ValidateFilePermissions는 파일 권한이 0600보다 넓으면 에러를 반환한다.
func ValidateFilePermissions(fsys afero.Fs, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		return fmt.Errorf("config.ValidateFilePermissions: %w", err)
	}
	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		return fmt.Errorf("config.ValidateFilePermissions: %s 권한이 %o (0600 필요)", path, perm)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath
	}
	if c.EnvPath == "" {
		c.EnvPath = DefaultEnvPath
	}
	if c.Client == "" {
		c.Client = DefaultClient
	}
	if c.LamderaTarget == "" {
		c.LamderaTarget = DefaultLamderaTarget
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported version %d", ErrConfig, c.Version)
	}
	if !supportedShells[c.Shell] {
		return fmt.Errorf("%w: unsupported shell %q (bash, zsh, sh, fish)", ErrConfig, c.Shell)
	}
	if strings.ContainsAny(c.Client, " \t") {
		return fmt.Errorf("%w: client must be an executable name or path: %q", ErrConfig, c.Client)
	}
	return nil
}
