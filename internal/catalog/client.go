package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
)

// ErrUnavailable marks transport failures and non-success responses from
// the catalog.
var ErrUnavailable = errors.New("catalog unavailable")

const (
	// The ingredient filter endpoint returns partial records, so every match
	// costs an extra by-id lookup. Cap the fan-out; matches past the cap are
	// dropped.
	ingredientFanoutCap = 12

	// The wire format carries numbered ingredient/measure pairs up to slot 20.
	maxIngredientSlots = 20
)

// Client queries the remote recipe catalog and is the sole writer into the
// local recipe cache.
type Client struct {
	http    *resty.Client
	recipes *service.Recipes
	logger  *zap.SugaredLogger
}

func NewClient(cfg *config.Config, recipes *service.Recipes, l *zap.SugaredLogger) *Client {
	return &Client{
		http:    resty.New().SetBaseURL(cfg.CatalogBaseURL),
		recipes: recipes,
		logger:  l,
	}
}

// mealList matches the catalog envelope. Every field of a record is either a
// string or null, so records decode as maps of optional strings.
type mealList struct {
	Meals []map[string]*string `json:"meals"`
}

func (c *Client) SearchByName(ctx context.Context, text string) ([]models.Recipe, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Recipe{}, nil
	}
	return c.search(ctx, "/search.php", "s", text)
}

func (c *Client) SearchByFirstLetter(ctx context.Context, letter string) ([]models.Recipe, error) {
	if strings.TrimSpace(letter) == "" {
		return []models.Recipe{}, nil
	}
	return c.search(ctx, "/search.php", "f", letter)
}

// SearchByIngredient is a two-phase query: the filter endpoint only returns
// partial records, so the first matches are resolved one by one through the
// lookup endpoint. Matches that resolve to nothing are discarded.
func (c *Client) SearchByIngredient(ctx context.Context, text string) ([]models.Recipe, error) {
	if strings.TrimSpace(text) == "" {
		return []models.Recipe{}, nil
	}

	meals, err := c.fetch(ctx, "/filter.php", "i", text)
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, 0, len(meals))
	for i, meal := range meals {
		if i >= ingredientFanoutCap {
			break
		}
		id := field(meal, "idMeal")
		if id == "" {
			continue
		}
		recipe, err := c.FetchByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if recipe != nil {
			out = append(out, *recipe)
		}
	}
	return out, nil
}

func (c *Client) FetchByID(ctx context.Context, id string) (*models.Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}

	meals, err := c.fetch(ctx, "/lookup.php", "i", id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, nil
	}

	recipe := normalize(meals[0])
	return &recipe, nil
}

// EnsureCached is the single cache-population path. A miss falls through to
// the catalog and merges the result back before returning it. Concurrent
// misses for one id may each fetch; the overwrite is idempotent.
func (c *Client) EnsureCached(ctx context.Context, id string) (*models.Recipe, error) {
	if cached := c.recipes.Get(id); cached != nil {
		return cached, nil
	}

	recipe, err := c.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, nil
	}

	if err := c.recipes.PutMany([]models.Recipe{*recipe}); err != nil {
		return nil, errors.Wrap(err, "populate recipe cache")
	}
	return recipe, nil
}

func (c *Client) search(ctx context.Context, path, param, value string) ([]models.Recipe, error) {
	meals, err := c.fetch(ctx, path, param, value)
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, 0, len(meals))
	for _, meal := range meals {
		out = append(out, normalize(meal))
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, path, param, value string) ([]map[string]*string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		SetResult(&mealList{}).
		Get(path)
	if err != nil {
		return nil, errors.WithMessage(ErrUnavailable, err.Error())
	}
	if resp.IsError() {
		return nil, errors.WithMessage(ErrUnavailable, fmt.Sprintf("catalog responded with %s", resp.Status()))
	}

	result, ok := resp.Result().(*mealList)
	if !ok || result.Meals == nil {
		return nil, nil
	}
	return result.Meals, nil
}
