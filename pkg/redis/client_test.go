package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClientFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestClient_SetGet(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := client.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("expected v, got %q", got)
	}
}

func TestClient_Get_Miss(t *testing.T) {
	client, _ := newTestClient(t)

	got, err := client.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error on miss, got %v", err)
	}
	if got != nil {
		t.Errorf("expected nil value on miss, got %q", got)
	}
}

func TestClient_TTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := client.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected expired key to miss, got %q", got)
	}
}

func TestClient_Delete(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := client.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := client.Exists(ctx, "k")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected key deleted")
	}
}

func TestClient_DeleteByPattern(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for _, key := range []string{"tbase:config:a", "tbase:config:b", "tbase:user:1"} {
		if err := client.Set(ctx, key, []byte("x"), time.Minute); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := client.DeleteByPattern(ctx, "tbase:config:*"); err != nil {
		t.Fatalf("DeleteByPattern failed: %v", err)
	}

	for key, want := range map[string]bool{
		"tbase:config:a": false,
		"tbase:config:b": false,
		"tbase:user:1":   true,
	} {
		exists, err := client.Exists(ctx, key)
		if err != nil {
			t.Fatalf("Exists %s failed: %v", key, err)
		}
		if exists != want {
			t.Errorf("key %s: expected exists=%v", key, want)
		}
	}

	// no matches is not an error
	if err := client.DeleteByPattern(ctx, "none:*"); err != nil {
		t.Errorf("DeleteByPattern with no matches failed: %v", err)
	}
}
