package views

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
)

// Register validates the form and the uniqueness rules before anything is
// written. On success the new user is persisted and becomes the session
// user. A rejected registration mutates nothing.
func (v *Views) Register(form models.RegisterForm) (*models.User, error) {
	if err := v.validate.Struct(form); err != nil {
		return nil, errors.WithMessage(ErrValidation, err.Error())
	}

	for _, u := range v.users.List() {
		if u.Username == form.Username {
			return nil, errors.WithMessage(ErrValidation, "username already taken")
		}
		if u.Email == form.Email {
			return nil, errors.WithMessage(ErrValidation, "email already registered")
		}
	}

	user := models.User{
		ID:       uuid.New().String(),
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Cookbook: make([]models.CookbookEntry, 0),
	}

	if err := v.users.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "persist user")
	}
	if err := v.users.SetCurrent(&user); err != nil {
		return nil, errors.Wrap(err, "set current user")
	}
	return &user, nil
}

func (v *Views) Login(form models.LoginForm) (*models.User, error) {
	if err := v.validate.Struct(form); err != nil {
		return nil, errors.WithMessage(ErrValidation, err.Error())
	}

	user, err := v.users.FindByCredentials(form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginUserNotFound) || errors.Is(err, service.ErrLoginPasswordDoesNotMatch) {
			return nil, errors.WithMessage(ErrValidation, "wrong username or password")
		}
		return nil, err
	}

	if err := v.users.SetCurrent(user); err != nil {
		return nil, errors.Wrap(err, "set current user")
	}
	return user, nil
}

func (v *Views) Logout() error {
	return v.users.SetCurrent(nil)
}

// SubmitReview upserts the session user's review for the recipe; a second
// submission for the same recipe overwrites the first and keeps its id.
func (v *Views) SubmitReview(form models.ReviewForm) (*models.Review, error) {
	current := v.users.Current()
	if current == nil {
		return nil, ErrNoSession
	}

	if err := v.validate.Struct(form); err != nil {
		return nil, errors.WithMessage(ErrValidation, err.Error())
	}

	review, err := v.reviews.Upsert(models.Review{
		RecipeID:   form.RecipeID,
		UserID:     current.ID,
		PreparedOn: form.PreparedOn,
		Difficulty: form.Difficulty,
		Taste:      form.Taste,
		Comment:    form.Comment,
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (v *Views) SaveCookbookEntry(form models.CookbookForm) error {
	current := v.users.Current()
	if current == nil {
		return ErrNoSession
	}
	if err := v.validate.Struct(form); err != nil {
		return errors.WithMessage(ErrValidation, err.Error())
	}
	return v.users.SetCookbookEntry(current.ID, form.MealID, form.Note)
}

func (v *Views) RemoveCookbookEntry(mealID string) error {
	current := v.users.Current()
	if current == nil {
		return ErrNoSession
	}
	return v.users.RemoveCookbookEntry(current.ID, mealID)
}

// DeleteAccount removes the session user with all their reviews and ends
// the session.
func (v *Views) DeleteAccount() error {
	current := v.users.Current()
	if current == nil {
		return ErrNoSession
	}
	return v.users.Delete(current.ID)
}

func (v *Views) ReviewsForUser(userID string) []models.Review {
	return v.reviews.ForUser(userID)
}

func (v *Views) SearchByName(ctx context.Context, text string) ([]models.Recipe, error) {
	recipes, err := v.catalog.SearchByName(ctx, text)
	if err != nil {
		return nil, err
	}
	v.session.SetLastSearch(recipes)
	return recipes, nil
}

func (v *Views) SearchByFirstLetter(ctx context.Context, letter string) ([]models.Recipe, error) {
	recipes, err := v.catalog.SearchByFirstLetter(ctx, letter)
	if err != nil {
		return nil, err
	}
	v.session.SetLastSearch(recipes)
	return recipes, nil
}

func (v *Views) SearchByIngredient(ctx context.Context, text string) ([]models.Recipe, error) {
	recipes, err := v.catalog.SearchByIngredient(ctx, text)
	if err != nil {
		return nil, err
	}
	v.session.SetLastSearch(recipes)
	return recipes, nil
}
