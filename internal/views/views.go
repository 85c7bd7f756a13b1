package views

import (
	"context"
	"sync"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/catalog"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/router"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNoSession  = errors.New("no active session")
)

const recipeNotFoundContent = "<p>We could not find that recipe.</p>"

// Session is the in-memory scratch state shared by the views: the results of
// the most recent search. It is explicit application context, initialized
// empty and injected, never reached through a global.
type Session struct {
	mu         sync.Mutex
	lastSearch []models.Recipe
}

func NewSession() *Session {
	return &Session{lastSearch: make([]models.Recipe, 0)}
}

func (s *Session) SetLastSearch(recipes []models.Recipe) {
	s.mu.Lock()
	s.lastSearch = recipes
	s.mu.Unlock()
}

func (s *Session) LastSearch() []models.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSearch
}

// Views holds the route lifecycle handlers and the mutation paths behind
// them. Everything it touches goes through the repositories or the catalog
// gateway.
type Views struct {
	users    *service.Users
	reviews  *service.Reviews
	catalog  *catalog.Client
	session  *Session
	validate *validator.Validate
	logger   *zap.SugaredLogger
}

func New(users *service.Users, reviews *service.Reviews, c *catalog.Client, session *Session, l *zap.SugaredLogger) *Views {
	return &Views{
		users:    users,
		reviews:  reviews,
		catalog:  c,
		session:  session,
		validate: validator.New(),
		logger:   l,
	}
}

// Routes is the closed route table. Keys not listed here resolve to the
// router's not-found state.
func (v *Views) Routes() []router.Route {
	return []router.Route{
		{Key: "#/home", Template: "home.html", Handler: v.Static},
		{Key: "#/login", Template: "login.html", Handler: v.Static},
		{Key: "#/register", Template: "register.html", Handler: v.Static},
		{Key: "#/search", Template: "search.html", Handler: v.Static},
		{Key: "#/recipe", Template: "recipe.html", Handler: v.Recipe},
		{Key: "#/profile", Template: "profile.html", RequiresAuth: true, Handler: v.Profile},
		{Key: "#/cookbook", Template: "cookbook.html", RequiresAuth: true, Handler: v.Cookbook},
		{Key: "#/reviews", Template: "reviews.html", RequiresAuth: true, Handler: v.Reviews},
	}
}

// Static renders the template as-is; the view has no data to load.
func (v *Views) Static(_ context.Context, template, _ string) (string, error) {
	return template, nil
}

// Recipe serves both the listing (no param, backed by the last search) and
// the detail view. An unresolvable id renders a not-found message instead of
// failing the transition.
func (v *Views) Recipe(ctx context.Context, template, param string) (string, error) {
	if param == "" {
		return template, nil
	}

	recipe, err := v.catalog.EnsureCached(ctx, param)
	if err != nil {
		return "", err
	}
	if recipe == nil {
		return recipeNotFoundContent, nil
	}
	return template, nil
}

func (v *Views) Profile(_ context.Context, template, _ string) (string, error) {
	if v.users.Current() == nil {
		return "", ErrNoSession
	}
	return template, nil
}

// Cookbook warms the cache for every bookmarked recipe so the view renders
// from local data.
func (v *Views) Cookbook(ctx context.Context, template, _ string) (string, error) {
	current := v.users.Current()
	if current == nil {
		return "", ErrNoSession
	}
	for _, entry := range current.Cookbook {
		if _, err := v.catalog.EnsureCached(ctx, entry.MealID); err != nil {
			return "", err
		}
	}
	return template, nil
}

func (v *Views) Reviews(_ context.Context, template, _ string) (string, error) {
	if v.users.Current() == nil {
		return "", ErrNoSession
	}
	return template, nil
}
