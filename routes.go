package consoleauth

import (
	"strings"
	"sync"
)

// RouteMeta is the authorization metadata the host router declares per route.
// At most one of Permission / AnyOf is consulted for a given route; AdminOnly
// is evaluated first and can deny on its own.
type RouteMeta struct {
	RequiresAuth bool
	AdminOnly    bool

	// Permission is a single required capability code.
	Permission string

	// AnyOf grants access when the session holds at least one listed code.
	// Ignored when Permission is set.
	AnyOf []string
}

// RouteResolver yields the metadata for a path. The second return is false
// for unknown paths; the guard treats those as requiring no specific
// authorization beyond authentication.
type RouteResolver interface {
	Resolve(path string) (RouteMeta, bool)
}

// RouteTable is a map-backed [RouteResolver]. Safe for concurrent use;
// registration normally happens once at startup.
type RouteTable struct {
	mu     sync.RWMutex
	routes map[string]RouteMeta
}

// NewRouteTable creates an empty RouteTable.
func NewRouteTable() *RouteTable {
	return &RouteTable{routes: make(map[string]RouteMeta)}
}

// Register declares metadata for path, overwriting any prior entry.
// Trailing slashes are normalized away so "/user/" and "/user" match.
func (rt *RouteTable) Register(path string, meta RouteMeta) {
	rt.mu.Lock()
	rt.routes[normalizePath(path)] = meta
	rt.mu.Unlock()
}

// Resolve implements [RouteResolver].
func (rt *RouteTable) Resolve(path string) (RouteMeta, bool) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	meta, ok := rt.routes[normalizePath(path)]
	return meta, ok
}

func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// DefaultRouteTable returns the console's route metadata: the public auth
// screens, the permission-scoped management views, and the exception pages.
func DefaultRouteTable() *RouteTable {
	rt := NewRouteTable()

	for _, p := range []string{"/login", "/register", "/forget", "/403", "/404"} {
		rt.Register(p, RouteMeta{})
	}

	rt.Register("/dashboard", RouteMeta{RequiresAuth: true, Permission: "system:dashboard"})
	rt.Register("/agents", RouteMeta{RequiresAuth: true})
	rt.Register("/user", RouteMeta{RequiresAuth: true, Permission: "system:user"})
	rt.Register("/device", RouteMeta{RequiresAuth: true, Permission: "system:device"})
	rt.Register("/role", RouteMeta{RequiresAuth: true, Permission: "system:role"})
	rt.Register("/template", RouteMeta{RequiresAuth: true, Permission: "system:prompt-template"})
	rt.Register("/memory-management", RouteMeta{RequiresAuth: true, Permission: "system:role"})
	rt.Register("/config/model", RouteMeta{RequiresAuth: true, Permission: "system:config:model"})
	rt.Register("/config/agent", RouteMeta{RequiresAuth: true, Permission: "system:config:agent"})
	rt.Register("/config/stt", RouteMeta{RequiresAuth: true, Permission: "system:config:stt"})
	rt.Register("/config/tts", RouteMeta{RequiresAuth: true, Permission: "system:config:tts"})
	rt.Register("/setting/account", RouteMeta{RequiresAuth: true, Permission: "system:setting"})

	return rt
}
