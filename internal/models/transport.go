package models

type RegisterForm struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Confirm  string `json:"confirm" validate:"required,eqfield=Password"`
}

type LoginForm struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ReviewForm struct {
	RecipeID   string `json:"recipeId" validate:"required"`
	PreparedOn string `json:"preparedOn" validate:"required"`
	Difficulty int    `json:"difficulty" validate:"required,min=1,max=5"`
	Taste      int    `json:"taste" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

type CookbookForm struct {
	MealID string `json:"mealId" validate:"required"`
	Note   string `json:"note"`
}

type NavigateResp struct {
	Location  string   `json:"location"`
	State     string   `json:"state"`
	Content   string   `json:"content"`
	NavActive []string `json:"navActive"`
}

type UserResp struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ReviewResp struct {
	ID         string `json:"id"`
	RecipeID   string `json:"recipeId"`
	PreparedOn string `json:"preparedOn"`
	Difficulty int    `json:"difficulty"`
	Taste      int    `json:"taste"`
	Comment    string `json:"comment"`
}
