package models

type (
	User struct {
		ID        string          `json:"id"`
		Username  string          `json:"username"`
		Email     string          `json:"email"`
		Password  string          `json:"password"`
		Favorites string          `json:"favorites"`
		Cookbook  []CookbookEntry `json:"cookbook"`
	}

	// CookbookEntry is a bookmarked recipe with a private note. A user holds
	// at most one entry per meal id; order of insertion is preserved.
	CookbookEntry struct {
		MealID string `json:"mealId"`
		Note   string `json:"note"`
	}

	Review struct {
		ID         string `json:"id"`
		RecipeID   string `json:"recipeId"`
		UserID     string `json:"userId"`
		PreparedOn string `json:"preparedOn"`
		Difficulty int    `json:"difficulty"`
		Taste      int    `json:"taste"`
		Comment    string `json:"comment"`
	}

	Ingredient struct {
		Name    string `json:"name"`
		Measure string `json:"measure"`
	}

	Recipe struct {
		ID           string       `json:"id"`
		Name         string       `json:"name"`
		Category     string       `json:"category"`
		Area         string       `json:"area"`
		Instructions string       `json:"instructions"`
		Thumbnail    string       `json:"thumbnail"`
		Tags         []string     `json:"tags"`
		YoutubeURL   string       `json:"youtubeUrl"`
		SourceURL    string       `json:"sourceUrl"`
		Ingredients  []Ingredient `json:"ingredients"`
	}
)

// FindCookbookEntry returns the entry for mealID and its index, or nil and -1.
func (u *User) FindCookbookEntry(mealID string) (*CookbookEntry, int) {
	for i := range u.Cookbook {
		if u.Cookbook[i].MealID == mealID {
			return &u.Cookbook[i], i
		}
	}
	return nil, -1
}
