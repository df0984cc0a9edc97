package factory

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	pkgmodel "github.com/goliatone/go-modelgen/pkg/model"
	pkgopenapi "github.com/goliatone/go-modelgen/pkg/openapi"
)

func TestModelMemoizesPerName(t *testing.T) {
	t.Parallel()

	count := 0
	build := func(name string, _ pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
		count++
		return &pkgmodel.Model{Name: name, Table: name}, nil
	}

	cached := New(pkgmodel.NewBase(), pkgopenapi.SchemaIndex{}, build)

	first, err := cached.Model("employee")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := cached.Model("employee")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if count != 1 {
		t.Fatalf("build count = %d, want 1", count)
	}
	if first != second {
		t.Fatal("expected the identical model pointer on repeat calls")
	}

	if _, err := cached.Model("division"); err != nil {
		t.Fatalf("distinct name: %v", err)
	}
	if count != 2 {
		t.Fatalf("build count = %d, want 2 after a distinct name", count)
	}
}

func TestModelRegistersOnBaseOnce(t *testing.T) {
	t.Parallel()

	base := pkgmodel.NewBase()
	build := func(name string, _ pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
		return &pkgmodel.Model{Name: name, Table: name}, nil
	}
	cached := New(base, pkgopenapi.SchemaIndex{}, build)

	if _, err := cached.Model("employee"); err != nil {
		t.Fatalf("build: %v", err)
	}
	if _, err := cached.Model("employee"); err != nil {
		t.Fatalf("cached call must not re-register: %v", err)
	}
	if base.Len() != 1 {
		t.Fatalf("base has %d models, want 1", base.Len())
	}
}

func TestModelPropagatesBuildErrors(t *testing.T) {
	t.Parallel()

	buildErr := errors.New("schema gone missing")
	calls := 0
	build := func(string, pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
		calls++
		return nil, buildErr
	}
	cached := New(nil, pkgopenapi.SchemaIndex{}, build)

	if _, err := cached.Model("employee"); !errors.Is(err, buildErr) {
		t.Fatalf("err = %v, want the build error unchanged", err)
	}
	// Failures are not cached; the name may be retried.
	if _, err := cached.Model("employee"); !errors.Is(err, buildErr) {
		t.Fatalf("retry err = %v, want the build error unchanged", err)
	}
	if calls != 2 {
		t.Fatalf("build calls = %d, want 2", calls)
	}
}

func TestModelNilBaseSkipsRegistration(t *testing.T) {
	t.Parallel()

	build := func(name string, _ pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
		return &pkgmodel.Model{Name: name, Table: name}, nil
	}
	cached := New(nil, pkgopenapi.SchemaIndex{}, build)

	if _, err := cached.Model("employee"); err != nil {
		t.Fatalf("build without base: %v", err)
	}
}

func TestModelConcurrentCallersBuildOnce(t *testing.T) {
	t.Parallel()

	count := 0
	build := func(name string, _ pkgopenapi.SchemaIndex) (*pkgmodel.Model, error) {
		count++
		return &pkgmodel.Model{Name: name, Table: name}, nil
	}
	cached := New(pkgmodel.NewBase(), pkgopenapi.SchemaIndex{}, build)

	const callers = 32
	models := make([]*pkgmodel.Model, callers)

	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(slot int) {
			defer wg.Done()
			m, err := cached.Model("employee")
			if err != nil {
				panic(fmt.Sprintf("concurrent build: %v", err))
			}
			models[slot] = m
		}(i)
	}
	wg.Wait()

	if count != 1 {
		t.Fatalf("build count = %d, want 1 under concurrent callers", count)
	}
	for _, m := range models {
		if m != models[0] {
			t.Fatal("concurrent callers observed different model pointers")
		}
	}
}
