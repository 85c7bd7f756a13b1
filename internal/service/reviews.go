package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
)

type Reviews struct {
	store  *db.Store
	logger *zap.SugaredLogger
}

func NewReviews(store *db.Store, l *zap.SugaredLogger) *Reviews {
	return &Reviews{
		store:  store,
		logger: l,
	}
}

func (s *Reviews) List() []models.Review {
	reviews := make([]models.Review, 0)
	s.store.Get(db.KeyReviews, &reviews)
	return reviews
}

func (s *Reviews) Save(reviews []models.Review) error {
	return s.store.Set(db.KeyReviews, reviews)
}

// Upsert keys on (RecipeID, UserID), not on ID. Resubmitting a review for
// the same recipe overwrites the stored one and keeps its id; a fresh id is
// generated only on first insert.
func (s *Reviews) Upsert(review models.Review) (models.Review, error) {
	reviews := s.List()
	for i := range reviews {
		if reviews[i].RecipeID == review.RecipeID && reviews[i].UserID == review.UserID {
			review.ID = reviews[i].ID
			reviews[i] = review
			if err := s.Save(reviews); err != nil {
				return models.Review{}, errors.Wrap(err, "save reviews")
			}
			return review, nil
		}
	}

	review.ID = uuid.New().String()
	reviews = append(reviews, review)
	if err := s.Save(reviews); err != nil {
		return models.Review{}, errors.Wrap(err, "save reviews")
	}
	return review, nil
}

func (s *Reviews) ForUser(userID string) []models.Review {
	out := make([]models.Review, 0)
	for _, r := range s.List() {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Reviews) ForRecipe(recipeID string) []models.Review {
	out := make([]models.Review, 0)
	for _, r := range s.List() {
		if r.RecipeID == recipeID {
			out = append(out, r)
		}
	}
	return out
}

func (s *Reviews) DeleteForUser(userID string) error {
	reviews := s.List()
	kept := make([]models.Review, 0, len(reviews))
	for i := range reviews {
		if reviews[i].UserID != userID {
			kept = append(kept, reviews[i])
		}
	}
	return s.Save(kept)
}
