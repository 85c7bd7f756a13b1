package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
)

// Recipes is the local cache of catalog recipes, keyed by id. Entries never
// expire and are never invalidated; the catalog is read-only from our side.
type Recipes struct {
	store  *db.Store
	logger *zap.SugaredLogger
}

func NewRecipes(store *db.Store, l *zap.SugaredLogger) *Recipes {
	return &Recipes{
		store:  store,
		logger: l,
	}
}

func (s *Recipes) Get(id string) *models.Recipe {
	cache := s.load()
	if recipe, ok := cache[id]; ok {
		return &recipe
	}
	return nil
}

// PutMany merges into the existing mapping, overwriting on key collision.
// Nothing is ever removed.
func (s *Recipes) PutMany(recipes []models.Recipe) error {
	cache := s.load()
	for _, r := range recipes {
		cache[r.ID] = r
	}
	if err := s.store.Set(db.KeyRecipes, cache); err != nil {
		return errors.Wrap(err, "save recipe cache")
	}
	return nil
}

func (s *Recipes) load() map[string]models.Recipe {
	cache := make(map[string]models.Recipe)
	s.store.Get(db.KeyRecipes, &cache)
	return cache
}
