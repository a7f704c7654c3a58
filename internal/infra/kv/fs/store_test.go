package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fpadmin/internal/kv/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStorePutGetKeysDelete(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if err := store.Put(ctx, "meetingConfig", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "meetingConfig", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := store.Put(ctx, "tenants/a/brandingConfig", []byte("b")); err != nil {
		t.Fatalf("nested put: %v", err)
	}
	got, err := store.Get(ctx, "meetingConfig")
	if err != nil || string(got) != "v2" {
		t.Fatalf("unexpected value %q err=%v", got, err)
	}
	keys, err := store.Keys(ctx, "tenants/")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != "tenants/a/brandingConfig" {
		t.Fatalf("unexpected keys %v", keys)
	}
	all, _ := store.Keys(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected temp files to be cleaned up, got %v", all)
	}
	if ok, err := store.Delete(ctx, "meetingConfig"); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if ok, _ := store.Delete(ctx, "meetingConfig"); ok {
		t.Fatalf("expected missing delete to report false")
	}
	if _, err := store.Get(ctx, "meetingConfig"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	for _, key := range []string{"", "  ", "../escape", "/abs"} {
		if err := store.Put(ctx, key, []byte("x")); err == nil {
			t.Fatalf("expected %q to be rejected", key)
		}
		if _, err := store.Get(ctx, key); err == nil {
			t.Fatalf("expected get of %q to be rejected", key)
		}
	}
}

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "settings")
	store, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if store.Driver() != core.DriverFilesystem || store.Root() != root {
		t.Fatalf("unexpected store %+v", store)
	}
	if fi, err := os.Stat(root); err != nil || !fi.IsDir() {
		t.Fatalf("expected root directory, err=%v", err)
	}
}
