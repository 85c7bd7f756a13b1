package router

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
)

type State string

const (
	StateMatched  State = "matched"
	StateNotFound State = "notFound"
	StateError    State = "error"
)

const (
	DefaultLocation = "#/home"
	LoginLocation   = "#/login"

	recipeRouteKey = "#/recipe"

	notFoundContent = "<h2>404 — nothing here</h2>"
	errorContent    = "<h2>Something went wrong, please try again</h2>"
)

// Handler is a route lifecycle callback. It receives the already-injected
// template and the dynamic parameter (empty for literal routes) and returns
// the content that replaces the mount point, or empty to keep the template.
type Handler func(ctx context.Context, template, param string) (string, error)

// Route is one immutable entry of the route table.
type Route struct {
	Key          string
	Template     string
	RequiresAuth bool
	Handler      Handler
}

// Outcome describes where a transition landed.
type Outcome struct {
	State    State
	Location string
	RouteKey string
	Param    string
}

// Router is a state machine over the current location identifier. It is not
// reentrant-safe: interleaved transitions race on the mount point and the
// last writer wins, nothing is cancelled.
type Router struct {
	routes []Route
	users  *service.Users
	loader TemplateLoader
	logger *zap.SugaredLogger

	mu        sync.Mutex
	templates map[string]string
	active    string
	mount     string
}

func New(routes []Route, users *service.Users, loader TemplateLoader, l *zap.SugaredLogger) *Router {
	return &Router{
		routes:    routes,
		users:     users,
		loader:    loader,
		logger:    l,
		templates: make(map[string]string),
	}
}

// Navigate runs a single transition for the given location identifier.
func (r *Router) Navigate(ctx context.Context, location string) Outcome {
	location = normalizeLocation(location)
	key, param := splitLocation(location)

	route := r.lookup(key)
	if route == nil {
		r.setMount(notFoundContent)
		return Outcome{State: StateNotFound, Location: location}
	}

	if route.RequiresAuth && r.users.Current() == nil {
		// The protected transition aborts without rendering; rewriting the
		// location re-enters the state machine.
		return r.Navigate(ctx, LoginLocation)
	}

	r.setActive(location)

	template, err := r.template(ctx, route.Template)
	if err != nil {
		return r.fail(location, err)
	}
	r.setMount(template)

	if route.Handler != nil {
		content, err := route.Handler(ctx, template, param)
		if err != nil {
			return r.fail(location, err)
		}
		if content != "" {
			r.setMount(content)
		}
	}

	return Outcome{State: StateMatched, Location: location, RouteKey: route.Key, Param: param}
}

// Active returns the last successfully matched location identifier.
func (r *Router) Active() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Mount returns the current content of the single mount point.
func (r *Router) Mount() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mount
}

// NavActive reports whether the navigation link for target should be
// highlighted: a link is active iff the current location starts with the
// link's own target, so a detail sub-route lights up its section link.
func (r *Router) NavActive(target string) bool {
	return strings.HasPrefix(r.Active(), target)
}

// ActiveLinks returns the route keys whose navigation links are highlighted
// for the current location, in route table order.
func (r *Router) ActiveLinks() []string {
	out := make([]string, 0, 1)
	for i := range r.routes {
		if r.NavActive(r.routes[i].Key) {
			out = append(out, r.routes[i].Key)
		}
	}
	return out
}

func (r *Router) lookup(key string) *Route {
	for i := range r.routes {
		if r.routes[i].Key == key {
			return &r.routes[i]
		}
	}
	return nil
}

// template loads through a permanent cache: the first load fetches and
// caches, later loads reuse the fragment verbatim. No invalidation.
func (r *Router) template(ctx context.Context, ref string) (string, error) {
	r.mu.Lock()
	cached, ok := r.templates[ref]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	template, err := r.loader.Load(ctx, ref)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.templates[ref] = template
	r.mu.Unlock()
	return template, nil
}

func (r *Router) fail(location string, err error) Outcome {
	r.logger.Errorw("route transition failed", "location", location, "error", err)
	r.setMount(errorContent)
	return Outcome{State: StateError, Location: location}
}

func (r *Router) setActive(location string) {
	r.mu.Lock()
	r.active = location
	r.mu.Unlock()
}

func (r *Router) setMount(content string) {
	r.mu.Lock()
	r.mount = content
	r.mu.Unlock()
}

func normalizeLocation(location string) string {
	if !strings.HasPrefix(location, "#/") {
		return DefaultLocation
	}
	return location
}

// splitLocation decomposes "#/recipe/<id>" into the recipe route key and the
// dynamic id; every other location matches literally.
func splitLocation(location string) (key, param string) {
	prefix := recipeRouteKey + "/"
	if strings.HasPrefix(location, prefix) && len(location) > len(prefix) {
		return recipeRouteKey, location[len(prefix):]
	}
	return location, ""
}
