package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
)

var (
	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
	ErrUserNotFound              = errors.New("user not found")
)

// Users owns the user collection and the single-slot current-user pointer.
// The collection is read and written whole; callers get full-replace
// semantics, never a partial patch.
type Users struct {
	store   *db.Store
	reviews *Reviews
	logger  *zap.SugaredLogger
}

func NewUsers(store *db.Store, reviews *Reviews, l *zap.SugaredLogger) *Users {
	return &Users{
		store:   store,
		reviews: reviews,
		logger:  l,
	}
}

func (s *Users) List() []models.User {
	users := make([]models.User, 0)
	s.store.Get(db.KeyUsers, &users)
	return users
}

func (s *Users) Save(users []models.User) error {
	return s.store.Set(db.KeyUsers, users)
}

func (s *Users) FindByID(id string) *models.User {
	users := s.List()
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

// Upsert replaces the user with a matching ID or appends a new one. When the
// current-user pointer references the same ID it is refreshed afterwards, so
// a logged-in session never holds a stale copy.
func (s *Users) Upsert(user models.User) error {
	users := s.List()
	found := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			found = true
			break
		}
	}
	if !found {
		users = append(users, user)
	}

	if err := s.Save(users); err != nil {
		return errors.Wrap(err, "save users")
	}

	if cur := s.Current(); cur != nil && cur.ID == user.ID {
		if err := s.SetCurrent(&user); err != nil {
			return errors.Wrap(err, "refresh current user")
		}
	}
	return nil
}

// Delete removes the user, cascades to their reviews and clears the
// current-user pointer when it referenced the deleted id. The three writes
// are not transactional.
func (s *Users) Delete(id string) error {
	users := s.List()
	kept := make([]models.User, 0, len(users))
	for i := range users {
		if users[i].ID != id {
			kept = append(kept, users[i])
		}
	}
	if err := s.Save(kept); err != nil {
		return errors.Wrap(err, "save users")
	}

	if err := s.reviews.DeleteForUser(id); err != nil {
		return errors.Wrap(err, "cascade reviews")
	}

	if cur := s.Current(); cur != nil && cur.ID == id {
		if err := s.SetCurrent(nil); err != nil {
			return errors.Wrap(err, "clear current user")
		}
	}
	return nil
}

// Current returns the session user or nil. The pointer is an independent
// key; nothing checks it against the user collection.
func (s *Users) Current() *models.User {
	user := models.User{}
	if !s.store.Get(db.KeyCurrentUser, &user) {
		return nil
	}
	if user.ID == "" {
		return nil
	}
	return &user
}

func (s *Users) SetCurrent(user *models.User) error {
	if user == nil {
		return s.store.Delete(db.KeyCurrentUser)
	}
	return s.store.Set(db.KeyCurrentUser, user)
}

// FindByCredentials compares passwords in plaintext. Hardening this is out
// of scope for the application.
func (s *Users) FindByCredentials(username, password string) (*models.User, error) {
	users := s.List()
	for i := range users {
		if users[i].Username == username {
			if users[i].Password != password {
				return nil, ErrLoginPasswordDoesNotMatch
			}
			return &users[i], nil
		}
	}
	return nil, ErrLoginUserNotFound
}

// SetCookbookEntry upserts the note for mealID inside the owning user.
// A user holds at most one entry per meal.
func (s *Users) SetCookbookEntry(userID, mealID, note string) error {
	user := s.FindByID(userID)
	if user == nil {
		return ErrUserNotFound
	}

	if entry, _ := user.FindCookbookEntry(mealID); entry != nil {
		entry.Note = note
	} else {
		user.Cookbook = append(user.Cookbook, models.CookbookEntry{MealID: mealID, Note: note})
	}

	return s.Upsert(*user)
}

func (s *Users) RemoveCookbookEntry(userID, mealID string) error {
	user := s.FindByID(userID)
	if user == nil {
		return ErrUserNotFound
	}

	if _, i := user.FindCookbookEntry(mealID); i >= 0 {
		user.Cookbook = append(user.Cookbook[:i], user.Cookbook[i+1:]...)
	}

	return s.Upsert(*user)
}
