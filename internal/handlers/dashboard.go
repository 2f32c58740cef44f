package handlers

import (
	"net/http"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// DashboardHandler serves the authenticated user's channel dashboard.
type DashboardHandler struct {
	Stats  StatsProvider
	Videos VideoStore
}

// ChannelStats handles GET /api/v1/dashboard/stats. A channel with no
// activity reports zeroes.
func (h DashboardHandler) ChannelStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	stats, err := h.Stats.ChannelStats(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("channel stats", "userId", userID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to load channel stats")
		return
	}

	respondData(ctx, w, http.StatusOK, stats, "channel stats fetched")
}

// ChannelVideos handles GET /api/v1/dashboard/videos: every video uploaded
// by the caller, published or not.
func (h DashboardHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	videos, err := h.Videos.ListByOwner(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "videos")
		return
	}
	if videos == nil {
		videos = []models.Video{}
	}

	respondData(ctx, w, http.StatusOK, videos, "channel videos fetched")
}
