package passwords

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// MinCost keeps the tests fast; the work factor does not change behavior.
func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	return NewBcryptHasher(bcrypt.MinCost, 2)
}

func TestHashVerify_Roundtrip(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if digest == "pw1" || digest == "" {
		t.Fatalf("digest must be a non-empty one-way transform, got %q", digest)
	}

	ok, err := h.Verify(ctx, "pw1", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}
}

func TestVerify_Mismatch(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "pw1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := h.Verify(ctx, "pw2", digest)
	if err != nil {
		t.Fatalf("mismatch must not be an error, got %v", err)
	}
	if ok {
		t.Fatalf("expected non-matching password to fail verification")
	}
}

func TestHash_DistinctDigestsForSamePlaintext(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	a, err := h.Hash(ctx, "same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	b, err := h.Hash(ctx, "same")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if a == b {
		t.Fatalf("embedded salt must make digests differ, both were %q", a)
	}
}

func TestVerify_MalformedDigest(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)

	ok, err := h.Verify(context.Background(), "pw", "not-a-bcrypt-digest")
	if err == nil {
		t.Fatalf("expected error for malformed digest")
	}
	if ok {
		t.Fatalf("malformed digest must not verify")
	}
}

func TestHash_CancelledContext(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "pw"); err == nil {
		t.Fatalf("expected error when context is already cancelled")
	}
}

func TestHash_ConcurrentCallers(t *testing.T) {
	t.Parallel()

	h := newTestHasher(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			digest, err := h.Hash(ctx, "pw")
			if err != nil {
				errs <- err
				return
			}
			if ok, err := h.Verify(ctx, "pw", digest); err != nil || !ok {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent hash/verify error: %v", err)
	}
}
