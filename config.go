package consoleauth

import (
	"errors"
	"slices"
	"strings"
	"time"
)

// Config defines the tunable surface of the engine. Configure before
// [Builder.Build]; treat as immutable afterwards.
type Config struct {
	Routes  RoutesConfig
	Flow    FlowConfig
	Vault   VaultConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
ROUTES CONFIG
====================================
*/

// RoutesConfig names the fixed paths the guard and controller steer between.
type RoutesConfig struct {
	Login     string
	Register  string
	Forget    string
	Forbidden string
	Dashboard string
	Agents    string

	// Public is the allow-list of paths reachable without a session.
	Public []string

	// RedirectParam is the query key carrying the deferred destination
	// through the login round trip.
	RedirectParam string
}

/*
====================================
FLOW CONFIG
====================================
*/

// FlowConfig tunes the auth flows.
type FlowConfig struct {
	// CooldownSeconds is the resend window started after a successful code
	// dispatch.
	CooldownSeconds int

	// SMSPurpose is forwarded to the code-send endpoint.
	SMSPurpose string

	// RedirectDelay postpones the post-register/post-reset navigation so a
	// success indicator can render first.
	RedirectDelay time.Duration

	// InspectTokenExpiry lets session restore drop a decodable, already
	// expired access token without a server round trip. Opaque tokens are
	// unaffected.
	InspectTokenExpiry bool
}

/*
====================================
VAULT CONFIG
====================================
*/

// VaultConfig configures remembered-credential persistence.
type VaultConfig struct {
	// KeyMaterial seeds the reversible password codec. Required.
	KeyMaterial []byte

	// RedisPrefix namespaces vault keys when a Redis client is supplied to
	// the builder. Ignored for in-memory storage.
	RedisPrefix string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the in-process metrics counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Routes: RoutesConfig{
			Login:         "/login",
			Register:      "/register",
			Forget:        "/forget",
			Forbidden:     "/403",
			Dashboard:     "/dashboard",
			Agents:        "/agents",
			Public:        []string{"/login", "/register", "/forget"},
			RedirectParam: "redirect",
		},
		Flow: FlowConfig{
			CooldownSeconds:    60,
			SMSPurpose:         "login",
			RedirectDelay:      500 * time.Millisecond,
			InspectTokenExpiry: true,
		},
		Vault: VaultConfig{
			RedisPrefix: "ca:vault",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// DefaultConfig returns the configuration [Builder] starts from.
func DefaultConfig() Config {
	return defaultConfig()
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	for name, path := range map[string]string{
		"Routes.Login":     c.Routes.Login,
		"Routes.Register":  c.Routes.Register,
		"Routes.Forget":    c.Routes.Forget,
		"Routes.Forbidden": c.Routes.Forbidden,
		"Routes.Dashboard": c.Routes.Dashboard,
		"Routes.Agents":    c.Routes.Agents,
	} {
		if path == "" || !strings.HasPrefix(path, "/") {
			return errors.New(name + " must be an absolute path")
		}
	}

	if !slices.Contains(c.Routes.Public, c.Routes.Login) {
		return errors.New("Routes.Public must include the login path")
	}
	if c.Routes.RedirectParam == "" {
		return errors.New("Routes.RedirectParam must not be empty")
	}
	if c.Flow.CooldownSeconds <= 0 {
		return errors.New("Flow.CooldownSeconds must be positive")
	}
	if c.Flow.RedirectDelay < 0 {
		return errors.New("Flow.RedirectDelay must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit.BufferSize must not be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Routes.Public = slices.Clone(cfg.Routes.Public)
	out.Vault.KeyMaterial = slices.Clone(cfg.Vault.KeyMaterial)
	return out
}
