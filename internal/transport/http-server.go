package transport

import (
	"context"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/catalog"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/models"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/router"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/views"
)

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	// HTTPServer is the facade that drives the router and the view actions.
	HTTPServer struct {
		router *router.Router
		views  *views.Views
		users  *service.Users
		logger *zap.SugaredLogger
	}
)

func NewHTTPServer(lc fx.Lifecycle, cfg *config.Config, rt *router.Router, vw *views.Views, users *service.Users, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()

	instance := HTTPServer{
		router: rt,
		views:  vw,
		users:  users,
		logger: logger,
	}

	e.GET("/navigate", instance.Navigate)
	e.GET("/state", instance.State)
	e.GET("/search", instance.Search)

	authG := e.Group("/auth")
	authG.POST("/register", instance.Register)
	authG.POST("/login", instance.Login)
	authG.POST("/logout", instance.Logout)

	cookbookG := e.Group("/cookbook")
	cookbookG.POST("", instance.CookbookSave)
	cookbookG.DELETE("/:mealId", instance.CookbookDelete)

	e.POST("/review", instance.ReviewSubmit)
	e.GET("/reviews", instance.ReviewList)
	e.DELETE("/account", instance.AccountDelete)

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Use(instance.AuthMiddleware)

	e.Validator = &CustomValidator{validator: validator.New()}

	echo.NotFoundHandler = func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				listen := cfg.Host + ":" + cfg.Port
				if err := e.Start(listen); err != nil && err != http.ErrServerClosed {
					e.Logger.Fatal("shutting down the server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return e.Shutdown(ctx)
		},
	})

	return &instance
}

// Navigate feeds a location identifier into the router and returns where the
// transition landed plus the mount point content.
func (s *HTTPServer) Navigate(c echo.Context) error {
	out := s.router.Navigate(c.Request().Context(), c.QueryParam("to"))
	return c.JSON(http.StatusOK, models.NavigateResp{
		Location:  s.router.Active(),
		State:     string(out.State),
		Content:   s.router.Mount(),
		NavActive: s.router.ActiveLinks(),
	})
}

func (s *HTTPServer) State(c echo.Context) error {
	return c.JSON(http.StatusOK, models.NavigateResp{
		Location:  s.router.Active(),
		Content:   s.router.Mount(),
		NavActive: s.router.ActiveLinks(),
	})
}

func (s *HTTPServer) Register(c echo.Context) error {
	form := models.RegisterForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	user, err := s.views.Register(form)
	if err != nil {
		return mapError(err)
	}

	s.router.Navigate(c.Request().Context(), "#/profile")
	return c.JSON(http.StatusOK, userResp(user))
}

func (s *HTTPServer) Login(c echo.Context) error {
	form := models.LoginForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	user, err := s.views.Login(form)
	if err != nil {
		return mapError(err)
	}

	s.router.Navigate(c.Request().Context(), router.DefaultLocation)
	return c.JSON(http.StatusOK, userResp(user))
}

func (s *HTTPServer) Logout(c echo.Context) error {
	if err := s.views.Logout(); err != nil {
		return mapError(err)
	}
	s.router.Navigate(c.Request().Context(), router.DefaultLocation)
	return c.NoContent(http.StatusNoContent)
}

// Search dispatches on whichever query parameter is present; blank input
// comes back as an empty list without touching the catalog.
func (s *HTTPServer) Search(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		recipes []models.Recipe
		err     error
	)
	switch {
	case c.QueryParams().Has("letter"):
		recipes, err = s.views.SearchByFirstLetter(ctx, c.QueryParam("letter"))
	case c.QueryParams().Has("ingredient"):
		recipes, err = s.views.SearchByIngredient(ctx, c.QueryParam("ingredient"))
	default:
		recipes, err = s.views.SearchByName(ctx, c.QueryParam("name"))
	}
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, recipes)
}

func (s *HTTPServer) CookbookSave(c echo.Context) error {
	form := models.CookbookForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}
	if err := s.views.SaveCookbookEntry(form); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) CookbookDelete(c echo.Context) error {
	mealID := c.Param("mealId")
	if mealID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path param 'mealId'")
	}
	if err := s.views.RemoveCookbookEntry(mealID); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *HTTPServer) ReviewSubmit(c echo.Context) error {
	form := models.ReviewForm{}
	if err := BindAndValidate(c, &form); err != nil {
		return err
	}

	review, err := s.views.SubmitReview(form)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, models.ReviewResp{
		ID:         review.ID,
		RecipeID:   review.RecipeID,
		PreparedOn: review.PreparedOn,
		Difficulty: review.Difficulty,
		Taste:      review.Taste,
		Comment:    review.Comment,
	})
}

func (s *HTTPServer) ReviewList(c echo.Context) error {
	current := s.users.Current()
	if current == nil {
		return c.NoContent(http.StatusUnauthorized)
	}

	reviews := s.views.ReviewsForUser(current.ID)
	resp := make([]models.ReviewResp, len(reviews))
	for i := range reviews {
		resp[i] = models.ReviewResp{
			ID:         reviews[i].ID,
			RecipeID:   reviews[i].RecipeID,
			PreparedOn: reviews[i].PreparedOn,
			Difficulty: reviews[i].Difficulty,
			Taste:      reviews[i].Taste,
			Comment:    reviews[i].Comment,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) AccountDelete(c echo.Context) error {
	if err := s.views.DeleteAccount(); err != nil {
		return mapError(err)
	}
	s.router.Navigate(c.Request().Context(), router.DefaultLocation)
	return c.NoContent(http.StatusNoContent)
}

// AuthMiddleware gates the mutating personal-data surface on an active
// session. Navigation itself stays open; the router applies its own
// redirect for protected routes.
func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	open := map[string]bool{
		"/ping":          true,
		"/navigate":      true,
		"/state":         true,
		"/search":        true,
		"/auth/register": true,
		"/auth/login":    true,
	}
	return func(c echo.Context) error {
		if open[c.Path()] {
			return next(c)
		}
		if s.users.Current() == nil {
			return c.NoContent(http.StatusUnauthorized)
		}
		return next(c)
	}
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err = c.Validate(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func userResp(user *models.User) models.UserResp {
	return models.UserResp{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func mapError(err error) error {
	switch {
	case errors.Is(err, views.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, views.ErrNoSession):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, catalog.ErrUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return err
	}
}
