package record

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"starfield/internal/core"
)

func sample(n int) *core.Attrs {
	a := core.NewAttrs(n)
	for i := range a.Positions {
		a.Positions[i] = float32(i) * 1.5
		a.Colors[i] = float32(i%3) / 2
	}
	return a
}

func TestRecordRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "run.db")
	r, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if err := r.Record(ctx, 3, core.SceneProjects, sample(4)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := r.Record(ctx, 1, core.SceneHome, sample(2)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	frames, err := r.Frames(ctx)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if !slices.Equal(frames, []int{1, 3}) {
		t.Fatalf("frames %v", frames)
	}

	f, err := r.Frame(ctx, 3)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := sample(4)
	if f.Scene != core.SceneProjects || !slices.Equal(f.Attrs.Positions, want.Positions) || !slices.Equal(f.Attrs.Colors, want.Colors) {
		t.Fatalf("frame mismatch: %+v", f)
	}
}

func TestRecordErrors(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "run.db")
	r, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if _, err := r.Frame(ctx, 9); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}
	if err := r.Record(ctx, 1, core.SceneHome, sample(1)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := r.Record(ctx, 1, core.SceneHome, sample(1)); err == nil {
		t.Fatal("duplicate frame should fail")
	}
	if err := r.Record(ctx, 2, core.SceneHome, nil); err == nil {
		t.Fatal("nil attrs should fail")
	}
	if _, err := Open(path, true); err == nil {
		t.Fatal("fresh open of an existing file should fail")
	}
}

func TestRecordFailureKeepsEarlierFrame(t *testing.T) {
	ctx := context.Background()
	r, err := Open(filepath.Join(t.TempDir(), "run.db"), true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if err := r.Record(ctx, 1, core.SceneHome, sample(2)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := r.Record(ctx, 1, core.SceneContact, sample(5)); err == nil {
		t.Fatal("duplicate frame should fail")
	}
	// The connection must be free again after the failed transaction.
	if err := r.Record(ctx, 2, core.SceneAbout, sample(3)); err != nil {
		t.Fatalf("Record after failure: %v", err)
	}

	f, err := r.Frame(ctx, 1)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if f.Scene != core.SceneHome || f.Attrs.Count() != 2 {
		t.Fatalf("frame 1 changed by failed write: %q with %d particles", f.Scene, f.Attrs.Count())
	}
	frames, err := r.Frames(ctx)
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if !slices.Equal(frames, []int{1, 2}) {
		t.Fatalf("frames %v", frames)
	}
}
