package router

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/recipebook-back/internal/config"
)

// TemplateLoader resolves a template reference to a markup fragment. The
// router treats the fragment as opaque text.
type TemplateLoader interface {
	Load(ctx context.Context, ref string) (string, error)
}

// HTTPTemplateLoader fetches fragments from the template host.
type HTTPTemplateLoader struct {
	http *resty.Client
}

func NewHTTPTemplateLoader(cfg *config.Config) *HTTPTemplateLoader {
	return &HTTPTemplateLoader{
		http: resty.New().SetBaseURL(cfg.TemplateBaseURL),
	}
}

func (l *HTTPTemplateLoader) Load(ctx context.Context, ref string) (string, error) {
	resp, err := l.http.R().SetContext(ctx).Get("/" + ref)
	if err != nil {
		return "", errors.Wrap(err, "load template")
	}
	if resp.IsError() {
		return "", errors.New(fmt.Sprintf("template host responded with %s", resp.Status()))
	}
	return resp.String(), nil
}
