package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotID, gotAccept, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(DefaultRequestIDHeader)
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"ip":"127.0.0.1"}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(func(o *HTTPFetcherOptions) {
		o.Client = srv.Client()
		o.UserAgent = "cubo-test"
	})

	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ip":"127.0.0.1"}`, string(body))
	assert.Len(t, gotID, 36)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "cubo-test", gotUA)
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL+"/missing")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestHTTPFetcher_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher().Fetch(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher_ThroughResolver(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/broken" {
			_, _ = w.Write([]byte(`<html>`))
			return
		}
		_, _ = w.Write([]byte(`{"x":"x","y":23}`))
	}))
	defer srv.Close()

	r := NewResolver()
	assert.Equal(t, map[string]any{"x": "x", "y": 23.0}, r.Resolve(context.Background(), srv.URL+"/ok"))
	assert.Equal(t, map[string]any{}, r.Resolve(context.Background(), srv.URL+"/broken"))
}

func TestHTTPFetcher_ErrorStatusBodyStillLoads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer srv.Close()

	obj := NewDataObject(nil)
	obj.Load(context.Background(), srv.URL)
	assert.Equal(t, map[string]any{"error": "not found"}, obj.Data())

	_, err := NewResolver().ResolveStrict(context.Background(), srv.URL)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.JSONEq(t, `{"error":"not found"}`, string(se.Body))
}

func TestHTTPFetcher_ErrorStatusWithoutJSONIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	obj := NewDataObject(map[string]any{"keep": 1})
	obj.Merge(context.Background(), srv.URL)
	assert.Equal(t, map[string]any{"keep": 1}, obj.Data())
}
