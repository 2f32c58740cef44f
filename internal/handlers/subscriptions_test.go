package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func toggleSubscription(handler SubscriptionHandler, channelID, userID string) *httptest.ResponseRecorder {
	req := authedRequest(http.MethodPost, "/api/v1/subscriptions/c/"+channelID, userID, nil)
	req.SetPathValue("channelId", channelID)
	rec := httptest.NewRecorder()
	handler.Toggle(rec, req)
	return rec
}

func TestToggleSubscriptionParity(t *testing.T) {
	subs := newFakeSubscriptionStore()
	handler := SubscriptionHandler{
		Subscriptions: subs,
		Users:         newFakeUserStore(models.User{ID: "channel-1", Username: "channel"}),
	}

	first := toggleSubscription(handler, "channel-1", "user-1")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if resp := decodeEnvelope(t, first); resp.Message != "subscribed" {
		t.Fatalf("expected subscribed, got %q", resp.Message)
	}

	second := toggleSubscription(handler, "channel-1", "user-1")
	if resp := decodeEnvelope(t, second); resp.Message != "unsubscribed" {
		t.Fatalf("expected unsubscribed, got %q", resp.Message)
	}
	if len(subs.active) != 0 {
		t.Fatalf("expected no active subscriptions after pair of toggles, got %d", len(subs.active))
	}
}

func TestSelfSubscriptionRejected(t *testing.T) {
	handler := SubscriptionHandler{
		Subscriptions: newFakeSubscriptionStore(),
		Users:         newFakeUserStore(models.User{ID: "user-1"}),
	}

	rec := toggleSubscription(handler, "user-1", "user-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestToggleSubscriptionMissingChannelReturns404(t *testing.T) {
	handler := SubscriptionHandler{
		Subscriptions: newFakeSubscriptionStore(),
		Users:         newFakeUserStore(),
	}

	rec := toggleSubscription(handler, "ghost", "user-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
