package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPBlobStore_Put(t *testing.T) {
	var gotPath, gotContentType, gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewHTTPBlobStore(srv.URL, "http://cdn.test/serve", "blob-token")
	err := store.Put(context.Background(), "charts/123-TSLA.png", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Expected put to succeed, got %v", err)
	}

	if gotPath != "/charts/123-TSLA.png" {
		t.Errorf("Unexpected path %s", gotPath)
	}
	if gotContentType != "image/png" {
		t.Errorf("Expected content type preserved, got %s", gotContentType)
	}
	if gotAuth != "Bearer blob-token" {
		t.Errorf("Unexpected Authorization header %q", gotAuth)
	}
	if string(gotBody) != "png-bytes" {
		t.Errorf("Unexpected body %q", gotBody)
	}
}

func TestHTTPBlobStore_PutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	store := NewHTTPBlobStore(srv.URL, "http://cdn.test/serve", "blob-token")
	err := store.Put(context.Background(), "charts/123-TSLA.png", []byte("png-bytes"), "image/png")
	if err == nil {
		t.Fatal("Expected error on upstream failure")
	}
}

func TestHTTPBlobStore_PublicURL(t *testing.T) {
	store := NewHTTPBlobStore("http://blobs.internal", "http://cdn.test/serve/", "blob-token")
	got := store.PublicURL("charts/123-TSLA.png")
	want := "http://cdn.test/serve/charts/123-TSLA.png"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
