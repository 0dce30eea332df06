package objectstore

import (
	"context"
	"testing"
	"time"

	"github.com/anikan666/pirate-lab/internal/config"
)

func TestUninitializedClientDegradesGracefully(t *testing.T) {
	// An endpoint the client constructor rejects leaves the backend in its
	// uninitialized state instead of failing startup.
	store := NewStore(config.S3Config{
		Bucket:   "audio-bucket",
		Endpoint: "http://bad endpoint",
		Prefix:   "audio/",
	})
	if store.Initialized() {
		t.Fatal("expected uninitialized backend for invalid endpoint")
	}

	ctx := context.Background()

	if store.Save(ctx, "a.mp3", []byte("x")) {
		t.Fatal("Save succeeded on uninitialized backend")
	}
	if _, ok := store.Get(ctx, "a.mp3"); ok {
		t.Fatal("Get succeeded on uninitialized backend")
	}
	if store.Delete(ctx, "a.mp3") {
		t.Fatal("Delete succeeded on uninitialized backend")
	}
	if store.Rename(ctx, "a.mp3", "b.mp3") {
		t.Fatal("Rename succeeded on uninitialized backend")
	}
	if files := store.List(ctx, ""); files != nil {
		t.Fatalf("List returned records on uninitialized backend: %v", files)
	}
	if store.Exists(ctx, "a.mp3") {
		t.Fatal("Exists succeeded on uninitialized backend")
	}
	if _, ok := store.AccessURL(ctx, "a.mp3"); ok {
		t.Fatal("AccessURL succeeded on uninitialized backend")
	}

	// Must be a no-op, not a panic.
	store.CleanupTemp(ctx, 300*time.Second)
}

func TestInvalidBucketFailsWithoutPanic(t *testing.T) {
	// The client constructs fine, but every operation fails the provider's
	// client-side bucket name validation before any network I/O happens.
	store := NewStore(config.S3Config{
		Bucket:   "Not A Valid Bucket Name!",
		Endpoint: "s3.amazonaws.com",
		Region:   "us-east-1",
		Prefix:   "audio/",
		UseSSL:   true,
	})
	if !store.Initialized() {
		t.Fatal("expected initialized client for syntactically valid endpoint")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if store.Save(ctx, "a.mp3", []byte("x")) {
		t.Fatal("Save succeeded against invalid bucket")
	}
	if store.Exists(ctx, "a.mp3") {
		t.Fatal("Exists succeeded against invalid bucket")
	}
	if len(store.List(ctx, "")) != 0 {
		t.Fatal("List returned records for invalid bucket")
	}
	if _, ok := store.AccessURL(ctx, "a.mp3"); ok {
		t.Fatal("AccessURL succeeded against invalid bucket")
	}
}

func TestKeyPrefixing(t *testing.T) {
	store := NewStore(config.S3Config{
		Bucket:   "audio-bucket",
		Endpoint: "s3.amazonaws.com",
		Prefix:   "audio/",
		UseSSL:   true,
	})

	if got := store.key("speech_x.mp3"); got != "audio/speech_x.mp3" {
		t.Fatalf("key mapping = %q, want %q", got, "audio/speech_x.mp3")
	}
}
