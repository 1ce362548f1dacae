package ocr

import (
	"image"
	"testing"
)

func TestBackends_NativeFirst(t *testing.T) {
	names := Backends()
	if len(names) == 0 || names[0] != NativeBackend {
		t.Errorf("Backends() = %v, want native first", names)
	}
}

func TestRegisterBackend(t *testing.T) {
	RegisterBackend("Stub-Test", func(Config) (Backend, error) { return &stubBackend{}, nil })
	t.Cleanup(func() {
		backendsMu.Lock()
		delete(backends, "stub-test")
		backendsMu.Unlock()
	})

	f, err := lookupBackend("STUB-test")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	b, err := f(DefaultConfig())
	if err != nil || b.Name() != "stub" {
		t.Errorf("factory returned %v, %v", b, err)
	}

	if _, err := lookupBackend("missing"); err == nil {
		t.Error("lookup of an unknown backend should fail")
	}
}

func TestOffsetRegions(t *testing.T) {
	regions := []TextRegion{{Bounds: Bounds{1, 2, 3, 4}}}
	offsetRegions(regions, image.Pt(10, 20))
	if got := regions[0].Bounds; got != (Bounds{11, 22, 13, 24}) {
		t.Errorf("got %+v", got)
	}
}

func TestBoundsRoundTrip(t *testing.T) {
	r := image.Rect(5, 6, 50, 60)
	if got := BoundsOf(r).Rect(); got != r {
		t.Errorf("got %v, want %v", got, r)
	}
}

func TestUnscale(t *testing.T) {
	got := unscale(Bounds{10, 20, 31, 41}, 2)
	if got != (Bounds{5, 10, 16, 21}) {
		t.Errorf("got %+v", got)
	}
}
