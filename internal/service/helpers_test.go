package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
)

func newTestServices(t *testing.T) (*Users, *Reviews, *Recipes) {
	t.Helper()

	cfg := config.Config{StorePath: filepath.Join(t.TempDir(), "test.db")}
	client, err := db.NewGormClient(&cfg)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	store := db.NewStore(client, logger)

	reviews := NewReviews(store, logger)
	users := NewUsers(store, reviews, logger)
	recipes := NewRecipes(store, logger)
	return users, reviews, recipes
}
