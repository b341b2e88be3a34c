package consoleauth

import (
	"testing"

	"github.com/connectai/consoleauth/session"
)

func newTestGuard(t *testing.T) (*Guard, *session.Store) {
	t.Helper()
	store := session.NewStore()
	return &Guard{
		store:    store,
		resolver: DefaultRouteTable(),
		routes:   DefaultConfig().Routes,
		metrics:  NewMetrics(MetricsConfig{Enabled: true}),
	}, store
}

func signIn(store *session.Store, isAdmin string, permissions ...string) {
	store.Set(&session.User{UserID: "u1", Username: "alice", IsAdmin: isAdmin},
		permissions, "operator", "access-token", "refresh-token")
}

func TestGuardAllowsPublicPathsWithoutSession(t *testing.T) {
	guard, _ := newTestGuard(t)

	for _, path := range []string{"/login", "/register", "/forget"} {
		if d := guard.Before(path); !d.Allow {
			t.Fatalf("Before(%q) redirected to %q, want allow", path, d.Target)
		}
	}
}

func TestGuardRedirectsUnauthenticatedToLoginWithRedirect(t *testing.T) {
	guard, _ := newTestGuard(t)

	d := guard.Before("/user")
	if d.Allow {
		t.Fatal("expected redirect")
	}
	if d.Target != "/login?redirect=%2Fuser" {
		t.Fatalf("Target = %q, want /login?redirect=%%2Fuser", d.Target)
	}
}

func TestGuardRedirectsAuthenticatedAwayFromLogin(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, session.AdminFlag)

	// The login special case wins over the public allow-list.
	d := guard.Before("/login")
	if d.Allow || d.Target != "/dashboard" {
		t.Fatalf("Before(/login) = %+v, want redirect to /dashboard", d)
	}

	store.Clear()
	signIn(store, "0")
	d = guard.Before("/login")
	if d.Allow || d.Target != "/dashboard" {
		t.Fatalf("non-admin Before(/login) = %+v, want redirect to /dashboard", d)
	}
}

func TestGuardAllowsOtherPublicPathsWhileAuthenticated(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0")

	for _, path := range []string{"/register", "/forget", "/403"} {
		if d := guard.Before(path); !d.Allow {
			t.Fatalf("Before(%q) = %+v, want allow", path, d)
		}
	}
}

func TestGuardRootPathLandsOnRoleDefault(t *testing.T) {
	guard, store := newTestGuard(t)

	signIn(store, session.AdminFlag)
	if d := guard.Before("/"); d.Target != "/dashboard" {
		t.Fatalf("admin root = %+v, want /dashboard", d)
	}

	store.Clear()
	signIn(store, "0")
	if d := guard.Before("/"); d.Target != "/agents" {
		t.Fatalf("non-admin root = %+v, want /agents", d)
	}
}

func TestGuardDeniesMissingPermission(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0")

	d := guard.Before("/user")
	if d.Allow || d.Target != "/403" {
		t.Fatalf("Before(/user) = %+v, want redirect to /403", d)
	}
	if got := guard.metrics.Value(MetricGuardDenied); got != 1 {
		t.Fatalf("denied counter = %d, want 1", got)
	}
}

func TestGuardAllowsGrantedPermission(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0", "system:user")

	if d := guard.Before("/user"); !d.Allow {
		t.Fatalf("Before(/user) = %+v, want allow", d)
	}
}

func TestGuardAdminOnlyBeatsPermission(t *testing.T) {
	guard, store := newTestGuard(t)
	table := NewRouteTable()
	table.Register("/ops", RouteMeta{RequiresAuth: true, AdminOnly: true, Permission: "system:ops"})
	guard.resolver = table

	signIn(store, "0", "system:ops")
	if d := guard.Before("/ops"); d.Allow || d.Target != "/403" {
		t.Fatalf("non-admin with permission = %+v, want /403", d)
	}

	store.Clear()
	signIn(store, session.AdminFlag, "system:ops")
	if d := guard.Before("/ops"); !d.Allow {
		t.Fatalf("admin with permission = %+v, want allow", d)
	}
}

func TestGuardAnyOfRequiresOneCode(t *testing.T) {
	guard, store := newTestGuard(t)
	table := NewRouteTable()
	table.Register("/console", RouteMeta{RequiresAuth: true, AnyOf: []string{"system:a", "system:b"}})
	guard.resolver = table

	signIn(store, "0", "system:other")
	if d := guard.Before("/console"); d.Allow {
		t.Fatal("no matching code must deny")
	}

	store.Clear()
	signIn(store, "0", "system:b")
	if d := guard.Before("/console"); !d.Allow {
		t.Fatalf("one matching code = %+v, want allow", d)
	}
}

func TestGuardIgnoresAnyOfWhenPermissionSet(t *testing.T) {
	guard, store := newTestGuard(t)
	table := NewRouteTable()
	table.Register("/mixed", RouteMeta{RequiresAuth: true, Permission: "system:main", AnyOf: []string{"system:alt"}})
	guard.resolver = table

	// Holding only the AnyOf code is not enough when Permission is set.
	signIn(store, "0", "system:alt")
	if d := guard.Before("/mixed"); d.Allow {
		t.Fatal("AnyOf must be ignored when Permission is set")
	}

	store.Clear()
	signIn(store, "0", "system:main")
	if d := guard.Before("/mixed"); !d.Allow {
		t.Fatalf("Permission granted = %+v, want allow", d)
	}
}

func TestGuardAllowsUnknownRouteForAuthenticated(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0")

	if d := guard.Before("/reports/weekly"); !d.Allow {
		t.Fatalf("unknown route = %+v, want allow", d)
	}
}

func TestGuardNormalizesTrailingSlash(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0", "system:user")

	if d := guard.Before("/user/"); !d.Allow {
		t.Fatalf("Before(/user/) = %+v, want allow", d)
	}
}

func TestGuardReactsToClearedSession(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0", "system:user")

	if d := guard.Before("/user"); !d.Allow {
		t.Fatal("expected allow while signed in")
	}

	store.Clear()
	d := guard.Before("/user")
	if d.Allow {
		t.Fatal("cleared session must redirect to login")
	}
	if d.Target != "/login?redirect=%2Fuser" {
		t.Fatalf("Target = %q, want login redirect", d.Target)
	}
}

func TestGuardAfterCountsCompletedTransitions(t *testing.T) {
	guard, store := newTestGuard(t)
	signIn(store, "0")

	guard.After("/agents")
	guard.After("/agents")

	if got := guard.metrics.Value(MetricGuardCompleted); got != 2 {
		t.Fatalf("completed counter = %d, want 2", got)
	}
}

func TestGuardDefaultRoute(t *testing.T) {
	guard, store := newTestGuard(t)

	signIn(store, session.AdminFlag)
	if got := guard.DefaultRoute(); got != "/dashboard" {
		t.Fatalf("DefaultRoute = %q, want /dashboard", got)
	}

	store.Clear()
	signIn(store, "")
	if got := guard.DefaultRoute(); got != "/agents" {
		t.Fatalf("DefaultRoute = %q, want /agents", got)
	}
}
