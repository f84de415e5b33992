package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/cubo/core"
)

// Interface compliance (compile-time assertions)
var (
	_ core.Reader  = (*InMemoryStore)(nil)
	_ core.Fetcher = (*InMemoryStore)(nil)
)

func TestInMemoryStore_PutReadIsolation(t *testing.T) {
	store := NewInMemoryStore()
	data := []byte(`{"a":1}`)
	store.Put("app.json", data)
	// mutate original slice
	data[0] = '['
	out, err := store.Read(context.Background(), "app.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(out) != `{"a":1}` { // should not reflect mutation
		t.Fatalf("expected stored copy, got %q", string(out))
	}
	// mutate returned slice
	out[0] = 'x'
	out2, _ := store.Fetch(context.Background(), "app.json")
	if string(out2) != `{"a":1}` {
		t.Fatalf("expected isolation, got %q", string(out2))
	}
}

func TestInMemoryStore_NotFound(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.Fetch(context.Background(), "mem:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryStore_CanceledContext(t *testing.T) {
	store := NewInMemoryStore()
	store.Put("a", []byte("{}"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Read(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	store := NewInMemoryStore()
	store.Put("b", []byte("2"))
	store.Put("a", []byte("1"))
	names := store.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("expected [a b], got %v", names)
	}
	if err := store.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if names := store.List(); len(names) != 1 {
		t.Fatalf("expected 1 name after delete, got %d", len(names))
	}
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("r%d", i%10)
			store.Put(name, []byte("{}"))
			_, _ = store.Read(context.Background(), name)
			_ = store.List()
		}()
	}
	wg.Wait()
	if names := store.List(); len(names) != 10 {
		t.Fatalf("expected 10 resources, got %d", len(names))
	}
}

func TestInMemoryStore_BacksResolver(t *testing.T) {
	store := NewInMemoryStore()
	store.Put("./application.json", []byte(`{"title":"cubo"}`))
	store.Put("mem:defaults", []byte(`{"lang":"en"}`))

	r := core.NewResolver(func(o *core.ResolverOptions) {
		o.Reader = store
		o.Fetchers = map[string]core.Fetcher{"mem": store}
	})

	obj := core.NewDataObject(nil, func(o *core.Options) { o.Resolver = r })
	obj.Load(context.Background(), "./application.json")
	obj.Merge(context.Background(), "mem:defaults")

	if obj.Get("title") != "cubo" || obj.Get("lang") != "en" {
		t.Fatalf("unexpected data: %v", obj.Data())
	}
}
