package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hupe1980/cubo"
	"github.com/hupe1980/cubo/core"
	"github.com/hupe1980/cubo/internal/config"
	"github.com/hupe1980/cubo/remote/s3"
)

// app bundles the façade with the strictness chosen on the command line.
type app struct {
	cubo   *cubo.Cubo
	strict bool
}

func newApp(flags *globalFlags) (*app, error) {
	path, required := flags.configPath, true
	if path == "" {
		path, required = config.DefaultFile, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger()

	fetchers := map[string]core.Fetcher{}
	if cfg.S3.Region != "" {
		client := s3.NewClient(s3.ClientConfig{
			Region:       cfg.S3.Region,
			Endpoint:     cfg.S3.Endpoint,
			UsePathStyle: cfg.S3.UsePathStyle,
			Anonymous:    cfg.S3.Anonymous,
		})
		fetchers[s3.Scheme] = s3.New(client, cfg.S3.MaxSize)
	}

	c := cubo.New(func(o *cubo.Options) {
		o.Root = cfg.Resolver.Root
		o.HTTPClient = &http.Client{Timeout: cfg.Resolver.Timeout}
		o.UserAgent = cfg.Resolver.UserAgent
		o.Fetchers = fetchers
		o.Logger = logger
	})

	return &app{cubo: c, strict: flags.strict || cfg.Resolver.Strict}, nil
}

// apply loads the first source into obj and merges the rest.
func (a *app) apply(ctx context.Context, obj core.Object, sources []string) error {
	for i, src := range sources {
		var data any = src
		if a.strict {
			resolved, err := a.cubo.ResolveStrict(ctx, src)
			if err != nil {
				return fmt.Errorf("resolve %s: %w", src, err)
			}
			data = resolved
		}
		if i == 0 {
			obj.Load(ctx, data)
		} else {
			obj.Merge(ctx, data)
		}
	}
	return nil
}
