package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/cache"
)

func newRevalidateController(t *testing.T, bus cache.TagBus) *RevalidateController {
	t.Helper()
	controller, err := NewRevalidateController(bus, "topsecret", testLogger())
	if err != nil {
		t.Fatalf("NewRevalidateController: %v", err)
	}
	controller.now = func() time.Time { return time.Unix(1700000000, 0) }
	return controller
}

func TestRevalidateRejectsBadSecret(t *testing.T) {
	bus := cache.NewMemoryBus(nil)
	controller := newRevalidateController(t, bus)

	req := httptest.NewRequest(http.MethodPost, "/revalidate?tag=products&secret=wrong", nil)
	rec := httptest.NewRecorder()
	controller.Revalidate(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if version, _ := bus.Version(context.Background(), cache.TagProducts); version != 0 {
		t.Fatalf("tag was bumped despite bad secret, version = %d", version)
	}
}

func TestRevalidateRejectsMissingTag(t *testing.T) {
	controller := newRevalidateController(t, cache.NewMemoryBus(nil))

	req := httptest.NewRequest(http.MethodPost, "/revalidate?secret=topsecret", nil)
	rec := httptest.NewRecorder()
	controller.Revalidate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRevalidateBumpsTag(t *testing.T) {
	bus := cache.NewMemoryBus(nil)
	controller := newRevalidateController(t, bus)

	req := httptest.NewRequest(http.MethodPost, "/revalidate?tag=products&secret=topsecret", nil)
	rec := httptest.NewRecorder()
	controller.Revalidate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec.Body)["data"].(map[string]any)
	if data["revalidated"] != true {
		t.Fatalf("revalidated = %v, want true", data["revalidated"])
	}
	if data["tag"] != "products" {
		t.Fatalf("tag = %v, want products", data["tag"])
	}
	if version, _ := bus.Version(context.Background(), cache.TagProducts); version != 1 {
		t.Fatalf("version = %d, want 1", version)
	}
}

func TestRevalidateRequiresConfiguredSecret(t *testing.T) {
	if _, err := NewRevalidateController(cache.NewMemoryBus(nil), "", testLogger()); err == nil {
		t.Fatal("expected an error for an empty secret")
	}
}
