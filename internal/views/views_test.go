package views

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/catalog"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/router"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
)

func newTestViews(t *testing.T, handler http.HandlerFunc) (*Views, *service.Users, *service.Reviews) {
	t.Helper()

	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"meals":null}`)
		}
	}
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		StorePath:      filepath.Join(t.TempDir(), "test.db"),
		CatalogBaseURL: srv.URL,
	}
	client, err := db.NewGormClient(&cfg)
	require.NoError(t, err)

	logger := zap.NewNop().Sugar()
	store := db.NewStore(client, logger)

	reviews := service.NewReviews(store, logger)
	users := service.NewUsers(store, reviews, logger)
	recipes := service.NewRecipes(store, logger)
	gateway := catalog.NewClient(&cfg, recipes, logger)

	return New(users, reviews, gateway, NewSession(), logger), users, reviews
}

func validRegisterForm() models.RegisterForm {
	return models.RegisterForm{
		Username: "anna",
		Email:    "anna@example.com",
		Password: "secret1",
		Confirm:  "secret1",
	}
}

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, ref string) (string, error) {
	return "<section>" + ref + "</section>", nil
}

func TestRegister(t *testing.T) {
	t.Run("creates the user and starts a session", func(t *testing.T) {
		v, users, _ := newTestViews(t, nil)

		user, err := v.Register(validRegisterForm())
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)

		require.Len(t, users.List(), 1)
		cur := users.Current()
		require.NotNil(t, cur)
		assert.Equal(t, user.ID, cur.ID)
	})

	t.Run("rejects a short password", func(t *testing.T) {
		v, users, _ := newTestViews(t, nil)

		form := validRegisterForm()
		form.Password = "12345"
		form.Confirm = "12345"

		_, err := v.Register(form)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, users.List())
	})

	t.Run("rejects a mismatched confirmation", func(t *testing.T) {
		v, users, _ := newTestViews(t, nil)

		form := validRegisterForm()
		form.Confirm = "secret2"

		_, err := v.Register(form)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, users.List())
	})

	t.Run("rejects duplicates without mutating anything", func(t *testing.T) {
		v, users, _ := newTestViews(t, nil)

		first, err := v.Register(validRegisterForm())
		require.NoError(t, err)

		dup := validRegisterForm()
		dup.Email = "other@example.com"
		_, err = v.Register(dup)
		assert.ErrorIs(t, err, ErrValidation)

		dup = validRegisterForm()
		dup.Username = "ben"
		_, err = v.Register(dup)
		assert.ErrorIs(t, err, ErrValidation)

		require.Len(t, users.List(), 1)
		cur := users.Current()
		require.NotNil(t, cur)
		assert.Equal(t, first.ID, cur.ID)
	})
}

// Registering lands the fresh session on the profile route.
func TestRegisterThenProfileTransition(t *testing.T) {
	v, users, _ := newTestViews(t, nil)
	r := router.New(v.Routes(), users, stubLoader{}, zap.NewNop().Sugar())

	// anonymous visitors bounce off the profile route
	out := r.Navigate(context.Background(), "#/profile")
	assert.Equal(t, "#/login", out.RouteKey)

	_, err := v.Register(validRegisterForm())
	require.NoError(t, err)

	out = r.Navigate(context.Background(), "#/profile")
	assert.Equal(t, router.StateMatched, out.State)
	assert.Equal(t, "#/profile", out.RouteKey)
	assert.Equal(t, "#/profile", r.Active())
}

func TestLogin(t *testing.T) {
	v, users, _ := newTestViews(t, nil)

	_, err := v.Register(validRegisterForm())
	require.NoError(t, err)
	require.NoError(t, v.Logout())
	assert.Nil(t, users.Current())

	_, err = v.Login(models.LoginForm{Username: "anna", Password: "wrong0"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, users.Current())

	user, err := v.Login(models.LoginForm{Username: "anna", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "anna", user.Username)
	require.NotNil(t, users.Current())
}

func TestSubmitReview(t *testing.T) {
	v, _, reviews := newTestViews(t, nil)

	form := models.ReviewForm{
		RecipeID:   "52772",
		PreparedOn: "2024-05-01",
		Difficulty: 2,
		Taste:      5,
		Comment:    "great",
	}

	t.Run("requires a session", func(t *testing.T) {
		_, err := v.SubmitReview(form)
		assert.ErrorIs(t, err, ErrNoSession)
	})

	_, err := v.Register(validRegisterForm())
	require.NoError(t, err)

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		bad := form
		bad.Taste = 6
		_, err := v.SubmitReview(bad)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, reviews.List())
	})

	t.Run("resubmission keeps the id and the latest comment", func(t *testing.T) {
		first, err := v.SubmitReview(form)
		require.NoError(t, err)

		update := form
		update.Comment = "even better the second time"
		second, err := v.SubmitReview(update)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		got := reviews.List()
		require.Len(t, got, 1)
		assert.Equal(t, "even better the second time", got[0].Comment)
	})
}

func TestCookbookActions(t *testing.T) {
	v, users, _ := newTestViews(t, nil)

	form := models.CookbookForm{MealID: "52772", Note: "less soy sauce"}

	assert.ErrorIs(t, v.SaveCookbookEntry(form), ErrNoSession)
	assert.ErrorIs(t, v.RemoveCookbookEntry("52772"), ErrNoSession)

	user, err := v.Register(validRegisterForm())
	require.NoError(t, err)

	require.NoError(t, v.SaveCookbookEntry(form))
	got := users.FindByID(user.ID)
	require.Len(t, got.Cookbook, 1)
	assert.Equal(t, "less soy sauce", got.Cookbook[0].Note)

	require.NoError(t, v.RemoveCookbookEntry("52772"))
	assert.Empty(t, users.FindByID(user.ID).Cookbook)
}

func TestDeleteAccount(t *testing.T) {
	v, users, reviews := newTestViews(t, nil)

	assert.ErrorIs(t, v.DeleteAccount(), ErrNoSession)

	user, err := v.Register(validRegisterForm())
	require.NoError(t, err)
	_, err = v.SubmitReview(models.ReviewForm{
		RecipeID: "52772", PreparedOn: "2024-05-01", Difficulty: 1, Taste: 4,
	})
	require.NoError(t, err)

	require.NoError(t, v.DeleteAccount())

	assert.Nil(t, users.Current())
	assert.Empty(t, users.List())
	assert.Empty(t, reviews.ForUser(user.ID))
}

func TestRecipeHandler(t *testing.T) {
	v, _, _ := newTestViews(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("i") == "52772" {
			fmt.Fprint(w, `{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole"}]}`)
			return
		}
		fmt.Fprint(w, `{"meals":null}`)
	})

	ctx := context.Background()

	t.Run("listing keeps the template", func(t *testing.T) {
		content, err := v.Recipe(ctx, "<section>recipes</section>", "")
		require.NoError(t, err)
		assert.Equal(t, "<section>recipes</section>", content)
	})

	t.Run("detail resolves through the cache", func(t *testing.T) {
		content, err := v.Recipe(ctx, "<section>recipes</section>", "52772")
		require.NoError(t, err)
		assert.Equal(t, "<section>recipes</section>", content)
	})

	t.Run("unknown id renders a message, not an error", func(t *testing.T) {
		content, err := v.Recipe(ctx, "<section>recipes</section>", "99999")
		require.NoError(t, err)
		assert.Equal(t, recipeNotFoundContent, content)
	})
}

func TestSearchStashesResultsInSession(t *testing.T) {
	v, _, _ := newTestViews(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meals":[{"idMeal":"52772","strMeal":"Teriyaki Chicken Casserole"}]}`)
	})

	got, err := v.SearchByName(context.Background(), "teriyaki")
	require.NoError(t, err)
	require.Len(t, got, 1)

	stashed := v.session.LastSearch()
	require.Len(t, stashed, 1)
	assert.Equal(t, "52772", stashed[0].ID)
}
