package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hupe1980/cubo/logging"
)

const defaultTracerName = "cubo"

// SourceKind classifies what a source resolved from.
type SourceKind string

const (
	// SourceValue is an in-memory mapping or Object.
	SourceValue SourceKind = "value"
	// SourceLocal is a local path read through a Reader.
	SourceLocal SourceKind = "local"
	// SourceRemote is a scheme:rest locator fetched through a Fetcher.
	SourceRemote SourceKind = "remote"
)

// Reader reads a named local resource.
type Reader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

// Fetcher fetches a remote resource addressed by a scheme:rest locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// Observer is notified once per locator resolution. err is the resolution
// error, reported even when Resolve replaces it with empty data.
type Observer interface {
	ObserveResolution(kind SourceKind, locator string, err error, duration time.Duration)
}

type noopObserver struct{}

func (noopObserver) ObserveResolution(SourceKind, string, error, time.Duration) {}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// Reader serves local paths. Defaults to FileReader{}.
	Reader Reader

	// Fetcher serves remote locators whose scheme has no entry in Fetchers.
	// Defaults to an HTTP fetcher over http.DefaultClient.
	Fetcher Fetcher

	// Fetchers maps lower-case schemes (e.g. "s3") to dedicated fetchers.
	Fetchers map[string]Fetcher

	// Observer receives one notification per locator resolution.
	Observer Observer

	// Logger receives a warning for every swallowed resolution failure.
	Logger logging.Logger

	// TracerName names the OpenTelemetry tracer taken from the global provider.
	TracerName string
}

// Resolver turns a source into a data mapping. Non-string sources pass
// through; strings are read locally or fetched remotely depending on IsURL.
// A Resolver is safe for concurrent use once constructed.
type Resolver struct {
	*loggerAdapter
	reader   Reader
	fetcher  Fetcher
	fetchers map[string]Fetcher
	observer Observer
	tracer   trace.Tracer
}

// NewResolver creates a Resolver with the OS file reader and HTTP fetcher
// unless overridden.
func NewResolver(optFns ...func(o *ResolverOptions)) *Resolver {
	opts := ResolverOptions{
		Reader:     FileReader{},
		Fetchers:   map[string]Fetcher{},
		Observer:   noopObserver{},
		Logger:     logging.NoOpLogger{},
		TracerName: defaultTracerName,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher()
	}

	if opts.Observer == nil {
		opts.Observer = noopObserver{}
	}

	fetchers := make(map[string]Fetcher, len(opts.Fetchers))
	for scheme, f := range opts.Fetchers {
		fetchers[strings.ToLower(scheme)] = f
	}

	return &Resolver{
		loggerAdapter: newLoggerAdapter(opts.Logger),
		reader:        opts.Reader,
		fetcher:       opts.Fetcher,
		fetchers:      fetchers,
		observer:      opts.Observer,
		tracer:        otel.Tracer(opts.TracerName),
	}
}

var urlPattern = regexp.MustCompile(`^[\w\-+_]+:.+`)

// IsURL reports whether s is a remote locator: one or more word, '-', '+'
// or '_' characters, a colon, then at least one more character. Anything
// else is treated as a local path. Note that a Windows drive path such as
// C:\data.json matches.
func IsURL(s string) bool {
	return urlPattern.MatchString(s)
}

// Scheme returns the lower-cased part of a remote locator before the first
// colon, or "" for local paths.
func Scheme(locator string) string {
	if !IsURL(locator) {
		return ""
	}
	scheme, _, _ := strings.Cut(locator, ":")
	return strings.ToLower(scheme)
}

// Resolve returns the data for source and never fails. Any resolution
// error is logged and replaced by an empty mapping, so an unreadable
// resource is indistinguishable from an empty one. A remote resource
// answering with a non-2xx status still resolves to its body when that
// body is a JSON object.
func (r *Resolver) Resolve(ctx context.Context, source any) map[string]any {
	data, err := r.resolve(ctx, source, false)
	if err != nil {
		r.LogWarn("resolution failed, using empty data", "source", describeSource(source), "error", err)
		return map[string]any{}
	}
	return data
}

// ResolveStrict is Resolve without the empty-mapping fallback. Non-2xx
// responses are reported as *StatusError.
//
// Accepted sources: nil (empty mapping), map[string]any and Object (passed
// through without copying), other maps with string keys (converted) and
// string locators.
func (r *Resolver) ResolveStrict(ctx context.Context, source any) (map[string]any, error) {
	return r.resolve(ctx, source, true)
}

func (r *Resolver) resolve(ctx context.Context, source any, strict bool) (map[string]any, error) {
	switch s := source.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		if s == nil {
			return map[string]any{}, nil
		}
		return s, nil
	case Object:
		if isNilObject(s) {
			return map[string]any{}, nil
		}
		return s.Data(), nil
	case string:
		return r.resolveLocator(ctx, s, strict)
	default:
		if m, ok := stringKeyedMap(source); ok {
			return m, nil
		}
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, source)
	}
}

// isNilObject reports whether o is a typed nil or a variant without a base.
func isNilObject(o Object) bool {
	if rv := reflect.ValueOf(o); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	return o.Base() == nil
}

var anyMapType = reflect.TypeOf(map[string]any(nil))

// stringKeyedMap converts maps keyed by a string kind. Named types over
// map[string]any keep their identity; other value types are copied.
func stringKeyedMap(source any) (map[string]any, bool) {
	rv := reflect.ValueOf(source)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return map[string]any{}, true
	}
	if rv.Type().ConvertibleTo(anyMapType) {
		return rv.Convert(anyMapType).Interface().(map[string]any), true
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return m, true
}

func (r *Resolver) resolveLocator(ctx context.Context, locator string, strict bool) (data map[string]any, err error) {
	kind := SourceLocal
	scheme := Scheme(locator)
	if scheme != "" {
		kind = SourceRemote
	}

	ctx, span := r.tracer.Start(ctx, "cubo.resolve",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cubo.source.kind", string(kind)),
			attribute.String("cubo.source.locator", locator),
		),
	)
	start := time.Now()

	defer func() {
		r.observer.ObserveResolution(kind, locator, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	var raw []byte
	if kind == SourceRemote {
		raw, err = r.fetch(ctx, scheme, locator)
	} else {
		raw, err = r.read(ctx, locator)
	}
	if err != nil {
		var se *StatusError
		if strict || !errors.As(err, &se) {
			return nil, err
		}
		// The body of an error response is still content.
		span.SetAttributes(attribute.Int("cubo.status_code", se.StatusCode))
		raw, err = se.Body, nil
	}

	data, err = decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", locator, err)
	}

	r.LogDebug("resolved source", "locator", locator, "kind", string(kind), "keys", len(data))

	return data, nil
}

func (r *Resolver) fetch(ctx context.Context, scheme, locator string) ([]byte, error) {
	f, ok := r.fetchers[scheme]
	if !ok {
		f = r.fetcher
	}
	if f == nil {
		return nil, fmt.Errorf("%w for scheme %q", ErrNoFetcher, scheme)
	}
	return f.Fetch(ctx, locator)
}

func (r *Resolver) read(ctx context.Context, path string) ([]byte, error) {
	if r.reader == nil {
		return nil, ErrNoReader
	}
	return r.reader.Read(ctx, path)
}

func decodeObject(raw []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, v)
	}
	return m, nil
}

func describeSource(source any) string {
	if s, ok := source.(string); ok {
		return s
	}
	return fmt.Sprintf("%T", source)
}
