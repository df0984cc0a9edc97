package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

const specPayload = `{"components": {"schemas": {}}}`

func TestLoadFromFS(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"specs/employees.json": &fstest.MapFile{Data: []byte(specPayload)},
	}
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/employees.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != specPayload {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
	if doc.Location() != "specs/employees.json" {
		t.Fatalf("location = %q", doc.Location())
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	t.Parallel()

	l := New(pkgopenapi.NewLoaderOptions())

	_, err := l.Load(context.Background(), pkgopenapi.SourceFromURL("http://127.0.0.1:1/spec.json"))
	if err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("err = %v, want http disabled error", err)
	}
}

func TestLoadHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(specPayload))
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != specPayload {
		t.Fatalf("payload mismatch: %q", doc.Raw())
	}
}

func TestLoadNilSource(t *testing.T) {
	t.Parallel()

	l := New(pkgopenapi.NewLoaderOptions())
	if _, err := l.Load(context.Background(), nil); err == nil {
		t.Fatal("expected an error for a nil source")
	}
}
