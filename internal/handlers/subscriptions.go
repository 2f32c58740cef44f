package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// SubscriptionHandler implements subscription endpoints.
type SubscriptionHandler struct {
	Subscriptions SubscriptionStore
	Users         UserStore
	NowFunc       func() time.Time
}

// Toggle handles POST /api/v1/subscriptions/c/{channelId}. Subscribing to
// your own channel is rejected.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	channelID, ok := pathID(r, "channelId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "channel id is required")
		return
	}
	if channelID == userID {
		respondError(ctx, w, http.StatusBadRequest, "you cannot subscribe to your own channel")
		return
	}

	if _, err := h.Users.FindByID(ctx, channelID); err != nil {
		respondStoreError(ctx, w, err, "channel")
		return
	}

	sub := models.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: userID,
		ChannelID:    channelID,
		CreatedAt:    h.now(),
	}

	subscribed, err := h.Subscriptions.Toggle(ctx, sub)
	if err != nil {
		logging.FromContext(ctx).Error("toggle subscription", "channelId", channelID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to toggle subscription")
		return
	}

	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	respondData(ctx, w, http.StatusOK, toggleResponse{Active: subscribed}, message)
}

// ListSubscribers handles GET /api/v1/subscriptions/u/{channelId}.
func (h SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	channelID, ok := pathID(r, "channelId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "channel id is required")
		return
	}

	if _, err := h.Users.FindByID(ctx, channelID); err != nil {
		respondStoreError(ctx, w, err, "channel")
		return
	}

	subscribers, err := h.Subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "subscribers")
		return
	}
	if subscribers == nil {
		subscribers = []models.SubscriberEntry{}
	}

	respondData(ctx, w, http.StatusOK, subscribers, "subscribers fetched")
}

// ListChannels handles GET /api/v1/subscriptions/c/{subscriberId}.
func (h SubscriptionHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriberID, ok := pathID(r, "subscriberId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "subscriber id is required")
		return
	}

	if _, err := h.Users.FindByID(ctx, subscriberID); err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	channels, err := h.Subscriptions.ListChannels(ctx, subscriberID)
	if err != nil {
		respondStoreError(ctx, w, err, "subscriptions")
		return
	}
	if channels == nil {
		channels = []models.ChannelEntry{}
	}

	respondData(ctx, w, http.StatusOK, channels, "subscribed channels fetched")
}

func (h SubscriptionHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
