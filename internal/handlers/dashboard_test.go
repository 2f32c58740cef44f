package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func TestChannelStatsZeroForQuietChannel(t *testing.T) {
	handler := DashboardHandler{Stats: &fakeStatsProvider{stats: map[string]models.ChannelStats{}}}

	req := authedRequest(http.MethodGet, "/api/v1/dashboard/stats", "quiet-user", nil)

	rec := httptest.NewRecorder()
	handler.ChannelStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data models.ChannelStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data != (models.ChannelStats{}) {
		t.Fatalf("expected all-zero stats, got %+v", resp.Data)
	}
}

func TestChannelStatsReturnsCounters(t *testing.T) {
	handler := DashboardHandler{Stats: &fakeStatsProvider{stats: map[string]models.ChannelStats{
		"user-1": {TotalSubscribers: 3, TotalLikes: 7, TotalViews: 42, TotalVideos: 2},
	}}}

	req := authedRequest(http.MethodGet, "/api/v1/dashboard/stats", "user-1", nil)

	rec := httptest.NewRecorder()
	handler.ChannelStats(rec, req)

	var resp struct {
		Data models.ChannelStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.TotalViews != 42 || resp.Data.TotalVideos != 2 {
		t.Fatalf("unexpected stats: %+v", resp.Data)
	}
}

func TestChannelVideosListsOwnOnly(t *testing.T) {
	videos := newFakeVideoStore(
		models.Video{ID: "vid-1", OwnerID: "user-1", IsPublished: true},
		models.Video{ID: "vid-2", OwnerID: "user-1", IsPublished: false},
		models.Video{ID: "vid-3", OwnerID: "someone-else"},
	)
	handler := DashboardHandler{Videos: videos}

	req := authedRequest(http.MethodGet, "/api/v1/dashboard/videos", "user-1", nil)

	rec := httptest.NewRecorder()
	handler.ChannelVideos(rec, req)

	var resp struct {
		Data []models.Video `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// Unpublished videos still show on the owner's dashboard.
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(resp.Data))
	}
}
