package core

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// Name tags of the built-in variants.
const (
	DataObjectName = "DataObject"
	ControllerName = "Controller"
)

// Options configures a DataObject at construction time.
type Options struct {
	// Resolver turns sources passed to Load and Merge into data. Defaults to
	// NewResolver() (OS file reader and HTTP fetcher).
	Resolver *Resolver
}

// Object is the contract shared by DataObject and every variant built on it.
// Variants embed *DataObject; the unexported setter keeps Create the only
// path that assigns a caller.
type Object interface {
	json.Marshaler
	fmt.Stringer

	Name() string
	Data() map[string]any
	Caller() any
	Base() *DataObject

	Get(key string, defaultValue ...any) any
	Has(key string) bool
	Set(key string, value any, defaultValue ...any) any

	Load(ctx context.Context, source any) map[string]any
	Merge(ctx context.Context, source any) map[string]any

	setCaller(caller any)
}

// DataObject is a named key/value container. Its data can be set directly,
// property by property, or resolved from a local file or remote resource.
//
// A DataObject is not safe for concurrent mutation. Concurrent Load, Merge
// and Set calls on one instance race on the same map; serialize them
// externally.
type DataObject struct {
	name     string
	data     map[string]any
	caller   any
	resolver *Resolver
}

var _ Object = (*DataObject)(nil)

// NewDataObject returns a DataObject holding data verbatim. A nil map is
// replaced by an empty one.
func NewDataObject(data map[string]any, optFns ...func(o *Options)) *DataObject {
	return NewVariant(DataObjectName, data, optFns...)
}

// NewVariant returns the base container for a variant tagged name. Packages
// defining their own variants embed the result.
func NewVariant(name string, data map[string]any, optFns ...func(o *Options)) *DataObject {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Resolver == nil {
		opts.Resolver = NewResolver()
	}

	if data == nil {
		data = map[string]any{}
	}

	return &DataObject{
		name:     name,
		data:     data,
		caller:   map[string]any{},
		resolver: opts.Resolver,
	}
}

// Create constructs a variant through ctor and records caller as the object
// that requested it. A nil caller is stored as an empty mapping.
//
//	c := core.Create(core.NewController, map[string]any{"d": "d"}, b)
func Create[T Object](ctor func(data map[string]any, optFns ...func(o *Options)) T, data map[string]any, caller any, optFns ...func(o *Options)) T {
	obj := ctor(data, optFns...)
	if caller == nil {
		caller = map[string]any{}
	}
	obj.setCaller(caller)
	return obj
}

// Name returns the variant tag fixed at construction.
func (o *DataObject) Name() string { return o.name }

// Data returns the underlying map (not a copy).
func (o *DataObject) Data() map[string]any { return o.data }

// Caller returns the object recorded by Create, or an empty mapping. It is
// informational only.
func (o *DataObject) Caller() any { return o.caller }

// Base returns the container itself; variants inherit it through embedding.
func (o *DataObject) Base() *DataObject { return o }

func (o *DataObject) setCaller(caller any) { o.caller = caller }

// Get returns data[key] when it is truthy, otherwise the optional default
// (nil when omitted). A present key holding 0, "", false or nil yields the
// default as well; see Truthy.
func (o *DataObject) Get(key string, defaultValue ...any) any {
	if v := o.data[key]; Truthy(v) {
		return v
	}
	return firstOrNil(defaultValue)
}

// Has reports whether key is present in data, whatever its value.
func (o *DataObject) Has(key string) bool {
	_, ok := o.data[key]
	return ok
}

// Set stores value under key, or the optional default when value is falsy,
// and returns what was stored.
func (o *DataObject) Set(key string, value any, defaultValue ...any) any {
	if !Truthy(value) {
		value = firstOrNil(defaultValue)
	}
	o.data[key] = value
	return value
}

// Load replaces data with the resolved source and returns it. A mapping is
// used as is; a string is resolved as a locator. Load never fails: an
// unresolvable source leaves data empty.
func (o *DataObject) Load(ctx context.Context, source any) map[string]any {
	o.data = o.resolver.Resolve(ctx, source)
	return o.data
}

// Merge resolves source like Load and copies its keys into data, overwriting
// keys present in both and keeping the rest.
func (o *DataObject) Merge(ctx context.Context, source any) map[string]any {
	maps.Copy(o.data, o.resolver.Resolve(ctx, source))
	return o.data
}

// MarshalJSON serializes the container as exactly its data.
func (o *DataObject) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.data)
}

// String returns the variant name.
func (o *DataObject) String() string { return o.name }

func firstOrNil(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
