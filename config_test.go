package consoleauth

import (
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{"empty login path", func(cfg *Config) { cfg.Routes.Login = "" }},
		{"relative forbidden path", func(cfg *Config) { cfg.Routes.Forbidden = "403" }},
		{"public missing login", func(cfg *Config) { cfg.Routes.Public = []string{"/register"} }},
		{"empty redirect param", func(cfg *Config) { cfg.Routes.RedirectParam = "" }},
		{"zero cooldown", func(cfg *Config) { cfg.Flow.CooldownSeconds = 0 }},
		{"negative redirect delay", func(cfg *Config) { cfg.Flow.RedirectDelay = -time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCloneConfigIsIndependent(t *testing.T) {
	original := DefaultConfig()
	original.Vault.KeyMaterial = []byte("key-material")

	clone := cloneConfig(original)
	clone.Routes.Public[0] = "/changed"
	clone.Vault.KeyMaterial[0] = 'X'

	if original.Routes.Public[0] == "/changed" {
		t.Fatal("clone shares Public slice with original")
	}
	if original.Vault.KeyMaterial[0] == 'X' {
		t.Fatal("clone shares KeyMaterial with original")
	}
}

func TestBuilderRequiresCollaborators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vault.KeyMaterial = []byte("key-material")

	if _, _, err := New().WithConfig(cfg).WithNavigator(&fakeNav{}).Build(); err == nil {
		t.Fatal("expected error without auth client")
	}
	if _, _, err := New().WithConfig(cfg).WithAuthClient(&fakeClient{}).Build(); err == nil {
		t.Fatal("expected error without navigator")
	}
	if _, _, err := New().WithAuthClient(&fakeClient{}).WithNavigator(&fakeNav{}).Build(); err == nil {
		t.Fatal("expected error without vault key material")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vault.KeyMaterial = []byte("key-material")

	b := New().WithConfig(cfg).WithAuthClient(&fakeClient{}).WithNavigator(&fakeNav{})
	controller, _, err := b.Build()
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	t.Cleanup(controller.Close)

	if _, _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}
