// internal/config/model.go
//
// Typed configuration model for the front end.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from the overlay layers:
//
//   • built-in defaults                        – lowest precedence,
//   • optional `.env`                          – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `STELLAR_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

// API locates the remote game API.
//
// UniverseTTL <= 0 disables the universe cache.
type API struct {
	BaseURL      string        `koanf:"base_url"      validate:"required,url"`
	Timeout      time.Duration `koanf:"timeout"       validate:"gte=0"`
	UniverseTTL  time.Duration `koanf:"universe_ttl"`
	UniverseSize int           `koanf:"universe_size" validate:"gte=1"`
}

// Session controls the attributes of the session cookies.
//
// HashKey enables signing and BlockKey adds AES encryption.  Both are raw
// strings; BlockKey must be 16, 24, or 32 bytes long.
type Session struct {
	Secure   bool   `koanf:"secure"`
	HTTPOnly bool   `koanf:"http_only"`
	MaxAge   int    `koanf:"max_age"   validate:"gte=0"`
	HashKey  string `koanf:"hash_key"  validate:"required_with=BlockKey"`
	BlockKey string `koanf:"block_key" validate:"omitempty,len=16|len=24|len=32"`
}

// Log holds logger settings.
type Log struct {
	Dir   string `koanf:"dir"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // STELLAR_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP    HTTP    `koanf:"http"`
	API     API     `koanf:"api"`
	Session Session `koanf:"session"`
	Log     Log     `koanf:"log"`
	Paths   Paths   `koanf:"-"`
}
