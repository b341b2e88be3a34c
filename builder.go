package consoleauth

import (
	"errors"

	internalaudit "github.com/connectai/consoleauth/internal/audit"
	"github.com/connectai/consoleauth/countdown"
	"github.com/connectai/consoleauth/session"
	"github.com/connectai/consoleauth/token"
	"github.com/connectai/consoleauth/vault"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Controller] and its [Guard]. Configure with the With*
// methods, then call [Builder.Build] once. Construction is allocation-only;
// no I/O happens until the controller's operations are invoked.
type Builder struct {
	config Config

	client   AuthClient
	nav      Navigator
	notify   Notifier
	resolver RouteResolver

	vaultStorage vault.Storage
	redis        *redis.Client

	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithAuthClient injects the auth endpoint transport. Required.
func (b *Builder) WithAuthClient(client AuthClient) *Builder {
	b.client = client
	return b
}

// WithNavigator injects the host router binding. Required.
func (b *Builder) WithNavigator(nav Navigator) *Builder {
	b.nav = nav
	return b
}

// WithNotifier injects the message surface. Defaults to [NoOpNotifier].
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notify = n
	return b
}

// WithRouteResolver injects route metadata resolution. Defaults to
// [DefaultRouteTable].
func (b *Builder) WithRouteResolver(r RouteResolver) *Builder {
	b.resolver = r
	return b
}

// WithVaultStorage injects credential-vault persistence. Defaults to
// in-process memory storage; ignored when WithRedis is also set.
func (b *Builder) WithVaultStorage(s vault.Storage) *Builder {
	b.vaultStorage = s
	return b
}

// WithRedis backs the credential vault with Redis, keyed under
// Config.Vault.RedisPrefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAuditSink injects the audit event consumer.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles the in-process metrics counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the session store, vault,
// cooldown timer, and observability, and returns the controller together
// with its navigation guard. A builder can be used once.
func (b *Builder) Build() (*Controller, *Guard, error) {
	if b.built {
		return nil, nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if b.client == nil {
		return nil, nil, errors.New("auth client required")
	}
	if b.nav == nil {
		return nil, nil, errors.New("navigator required")
	}
	if len(cfg.Vault.KeyMaterial) == 0 {
		return nil, nil, errors.New("vault key material required")
	}

	resolver := b.resolver
	if resolver == nil {
		resolver = DefaultRouteTable()
	}
	notify := b.notify
	if notify == nil {
		notify = NoOpNotifier{}
	}

	storage := b.vaultStorage
	if b.redis != nil {
		storage = vault.NewRedisStorage(b.redis, cfg.Vault.RedisPrefix)
	}
	if storage == nil {
		storage = vault.NewMemoryStorage()
	}

	credentialVault, err := vault.New(storage, cfg.Vault.KeyMaterial)
	if err != nil {
		return nil, nil, err
	}

	store := session.NewStore()
	metrics := NewMetrics(cfg.Metrics)
	audit := internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	controller := &Controller{
		config:    cfg,
		store:     store,
		vault:     credentialVault,
		cooldown:  countdown.NewTimer(),
		inspector: token.NewInspector(),
		client:    b.client,
		resolver:  resolver,
		nav:       b.nav,
		notify:    notify,
		audit:     audit,
		metrics:   metrics,
	}

	guard := &Guard{
		store:    store,
		resolver: resolver,
		routes:   cfg.Routes,
		metrics:  metrics,
		audit:    audit,
	}

	b.built = true

	return controller, guard, nil
}
