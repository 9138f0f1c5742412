package webmeta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	assert.NoError(t, ValidateURL("https://example.com/docs"))
	assert.NoError(t, ValidateURL("http://example.com"))
	assert.Error(t, ValidateURL("ftp://example.com"))
	assert.Error(t, ValidateURL("not a url"))
	assert.Error(t, ValidateURL("/relative/path"))
}

func TestFetchTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, `<html><head><title>
			Product   Docs
		</title></head><body>hi</body></html>`)
	}))
	defer srv.Close()

	assert.Equal(t, "Product Docs", FetchTitle(context.Background(), srv.URL))
}

func TestFetchTitleFallsBackToURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"title": "nope"}`)
	}))
	defer srv.Close()

	assert.Equal(t, srv.URL, FetchTitle(context.Background(), srv.URL))
}

func TestExtractTitleMissing(t *testing.T) {
	assert.Equal(t, "", extractTitle("<html><body>no title</body></html>"))
}
