// Package cubo provides a high-level façade over the core data container and
// its resolver, wiring logging, metrics, HTTP and S3 backends in one place.
// Most applications interact with this package by:
//  1. Creating a Cubo via New() (optionally overriding default backends)
//  2. Creating containers with NewDataObject, NewController or Create
//  3. Loading or merging data from values, files or remote locators
//
// All defaults are safe for local development: local paths are read from the
// working directory, http(s) locators are fetched with http.DefaultClient and
// failures are silently replaced by empty data.
package cubo

import (
	"context"
	"net/http"
	"time"

	"github.com/hupe1980/cubo/core"
	"github.com/hupe1980/cubo/logging"
)

// Options configures the Cubo instance.
type Options struct {
	// Reader serves local paths (defaults to core.FileReader rooted at Root).
	Reader core.Reader

	// Root is the directory relative local paths are resolved against when
	// Reader is not set. Empty means the working directory.
	Root string

	// HTTPClient performs remote fetches (defaults to http.DefaultClient).
	HTTPClient *http.Client

	// UserAgent is sent with every HTTP fetch when set.
	UserAgent string

	// Fetchers maps additional schemes (e.g. "s3") to dedicated fetchers.
	Fetchers map[string]core.Fetcher

	// Observer receives one notification per locator resolution, e.g. a
	// metrics.Prometheus.
	Observer core.Observer

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Cubo is the high-level façade holding one shared resolver.
type Cubo struct {
	opts     Options
	resolver *core.Resolver
}

// New creates a new Cubo instance with optional overrides.
func New(optFns ...func(o *Options)) *Cubo {
	opts := Options{
		HTTPClient: http.DefaultClient,
		Fetchers:   map[string]core.Fetcher{},
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Reader == nil {
		opts.Reader = core.FileReader{Root: opts.Root}
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	observers := multiObserver{logObserver{logger: opts.Logger}}
	if opts.Observer != nil {
		observers = append(observers, opts.Observer)
	}

	fetcher := core.NewHTTPFetcher(func(o *core.HTTPFetcherOptions) {
		o.Client = opts.HTTPClient
		o.UserAgent = opts.UserAgent
	})

	r := core.NewResolver(func(o *core.ResolverOptions) {
		o.Reader = opts.Reader
		o.Fetcher = fetcher
		o.Fetchers = opts.Fetchers
		o.Observer = observers
		o.Logger = opts.Logger
	})

	return &Cubo{opts: opts, resolver: r}
}

// Resolver returns the shared resolver.
func (c *Cubo) Resolver() *core.Resolver { return c.resolver }

// Resolve resolves source with the empty-mapping fallback.
func (c *Cubo) Resolve(ctx context.Context, source any) map[string]any {
	return c.resolver.Resolve(ctx, source)
}

// ResolveStrict resolves source and reports failures.
func (c *Cubo) ResolveStrict(ctx context.Context, source any) (map[string]any, error) {
	return c.resolver.ResolveStrict(ctx, source)
}

// NewDataObject returns a DataObject bound to the shared resolver.
func (c *Cubo) NewDataObject(data map[string]any) *core.DataObject {
	return core.NewDataObject(data, c.bind)
}

// NewController returns a Controller bound to the shared resolver.
func (c *Cubo) NewController(data map[string]any) *core.Controller {
	return core.NewController(data, c.bind)
}

// Create is core.Create with the variant bound to c's resolver.
func Create[T core.Object](c *Cubo, ctor func(data map[string]any, optFns ...func(o *core.Options)) T, data map[string]any, caller any) T {
	return core.Create(ctor, data, caller, c.bind)
}

func (c *Cubo) bind(o *core.Options) { o.Resolver = c.resolver }

type multiObserver []core.Observer

func (m multiObserver) ObserveResolution(kind core.SourceKind, locator string, err error, d time.Duration) {
	for _, o := range m {
		o.ObserveResolution(kind, locator, err, d)
	}
}

// resolutionLogger is implemented by logging.CuboLogger.
type resolutionLogger interface {
	LogResolution(locator, kind string, dur time.Duration, err error)
}

// logObserver reports resolution timings to loggers that support it.
type logObserver struct {
	logger logging.Logger
}

func (l logObserver) ObserveResolution(kind core.SourceKind, locator string, err error, d time.Duration) {
	rl, ok := l.logger.(resolutionLogger)
	if !ok {
		return
	}
	rl.LogResolution(locator, string(kind), d, err)
}
