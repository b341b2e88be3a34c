package consoleauth

import (
	"context"
	"net/url"
	"time"

	internalaudit "github.com/connectai/consoleauth/internal/audit"
	"github.com/connectai/consoleauth/session"
)

// Decision is the outcome of a single navigation attempt. When Allow is
// false, Target names where the attempt is redirected instead.
type Decision struct {
	Allow  bool
	Target string
}

// Guard gates every route transition against the session store. It is a pure
// decision function over (route metadata, session state, allow-list): no
// caching, no session mutation, re-evaluated on every attempt. The host
// router calls [Guard.Before] ahead of each transition and [Guard.After]
// once a transition lands.
//
// Build a Guard through [Builder.Build]; it shares the controller's store,
// resolver, and observability.
type Guard struct {
	store    *session.Store
	resolver RouteResolver
	routes   RoutesConfig
	metrics  *Metrics
	audit    *internalaudit.Dispatcher
}

// Before decides the fate of a navigation attempt to path. First matching
// rule wins:
//
//  1. No session: public allow-list paths pass, everything else redirects to
//     login with the original path in the redirect query parameter.
//  2. Login while authenticated: redirect to the dashboard.
//  3. Root path: redirect to the admin or agent default.
//  4. requiresAuth metadata: admin-only, then single permission, then any-of.
//     A failed check redirects to the forbidden page.
//  5. Everything else passes.
func (g *Guard) Before(path string) Decision {
	start := time.Now()
	decision := g.decide(normalizePath(path))
	g.metrics.Observe(MetricGuardLatency, time.Since(start))
	return decision
}

func (g *Guard) decide(path string) Decision {
	// The allow-list only matters without a session. With one, the login
	// special case below must win over the list.
	if !g.store.Authenticated() {
		for _, p := range g.routes.Public {
			if normalizePath(p) == path {
				g.metrics.Inc(MetricGuardAllowed)
				return Decision{Allow: true}
			}
		}
		g.metrics.Inc(MetricGuardRedirected)
		target := g.routes.Login + "?" + url.Values{g.routes.RedirectParam: {path}}.Encode()
		return Decision{Target: target}
	}

	if path == g.routes.Login {
		g.metrics.Inc(MetricGuardRedirected)
		return Decision{Target: g.routes.Dashboard}
	}

	if path == "/" {
		g.metrics.Inc(MetricGuardRedirected)
		return Decision{Target: g.defaultRoute()}
	}

	meta, ok := g.resolver.Resolve(path)
	if ok && meta.RequiresAuth {
		if deny, reason := g.denied(meta); deny {
			g.metrics.Inc(MetricGuardDenied)
			g.emitDenied(path, reason)
			return Decision{Target: g.routes.Forbidden}
		}
	}

	g.metrics.Inc(MetricGuardAllowed)
	return Decision{Allow: true}
}

// denied applies the authorization predicates in fixed priority order.
func (g *Guard) denied(meta RouteMeta) (bool, string) {
	if meta.AdminOnly && !g.store.IsAdmin() {
		return true, "admin_required"
	}
	if meta.Permission != "" {
		if !g.store.HasPermission(meta.Permission) {
			return true, "permission_missing"
		}
		return false, ""
	}
	if len(meta.AnyOf) > 0 && !g.store.HasAnyPermission(meta.AnyOf) {
		return true, "any_of_missing"
	}
	return false, ""
}

// After records that a transition landed. It has no effect on the decision
// already made.
func (g *Guard) After(path string) {
	_ = path
	g.metrics.Inc(MetricGuardCompleted)
}

// DefaultRoute returns the landing route for the current session: the
// dashboard for administrators, the agent view otherwise.
func (g *Guard) DefaultRoute() string {
	return g.defaultRoute()
}

func (g *Guard) defaultRoute() string {
	if g.store.IsAdmin() {
		return g.routes.Dashboard
	}
	return g.routes.Agents
}

func (g *Guard) emitDenied(path, reason string) {
	if g.audit == nil {
		return
	}
	var userID string
	if u := g.store.User(); u != nil {
		userID = u.UserID
	}
	g.audit.Emit(context.Background(), AuditEvent{
		EventType: "guard_denied",
		UserID:    userID,
		Path:      path,
		Metadata:  map[string]string{"reason": reason},
	})
}
