package main

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/catalog"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/db"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/router"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/service"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/transport"
	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/views"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			func() (*zap.SugaredLogger, error) {
				l, err := zap.NewDevelopment()
				if err != nil {
					return nil, err
				}
				return l.Sugar(), nil
			},
			db.NewGormClient,
			db.NewStore,
			service.NewReviews,
			service.NewUsers,
			service.NewRecipes,
			catalog.NewClient,
			views.NewSession,
			views.New,
			func(cfg *config.Config) router.TemplateLoader {
				return router.NewHTTPTemplateLoader(cfg)
			},
			func(v *views.Views, users *service.Users, loader router.TemplateLoader, l *zap.SugaredLogger) *router.Router {
				return router.New(v.Routes(), users, loader, l)
			},
			transport.NewHTTPServer,
		),
		fx.Invoke(func(s *transport.HTTPServer, r *router.Router) {
			// Initial load lands on the default location.
			r.Navigate(context.Background(), router.DefaultLocation)
		}),
	)

	app.Run()
}
