package catalog

import (
	"fmt"
	"strings"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
)

// normalize converts a raw catalog record into the internal recipe shape.
// It never fails: missing fields degrade to placeholders and ingredient
// slots with a blank name are skipped.
func normalize(meal map[string]*string) models.Recipe {
	ingredients := make([]models.Ingredient, 0, maxIngredientSlots)
	for i := 1; i <= maxIngredientSlots; i++ {
		name := field(meal, fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:    name,
			Measure: field(meal, fmt.Sprintf("strMeasure%d", i)),
		})
	}

	return models.Recipe{
		ID:           field(meal, "idMeal"),
		Name:         field(meal, "strMeal"),
		Category:     fieldOr(meal, "strCategory", "Uncategorized"),
		Area:         fieldOr(meal, "strArea", "Unknown"),
		Instructions: field(meal, "strInstructions"),
		Thumbnail:    field(meal, "strMealThumb"),
		Tags:         splitTags(field(meal, "strTags")),
		YoutubeURL:   field(meal, "strYoutube"),
		SourceURL:    field(meal, "strSource"),
		Ingredients:  ingredients,
	}
}

func field(meal map[string]*string, key string) string {
	v, ok := meal[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func fieldOr(meal map[string]*string, key, fallback string) string {
	if v := field(meal, key); v != "" {
		return v
	}
	return fallback
}

func splitTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
