package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

// PlaylistHandler implements playlist endpoints.
type PlaylistHandler struct {
	Playlists PlaylistStore
	Videos    VideoStore
	Users     UserStore
	NowFunc   func() time.Time
}

// Create handles POST /api/v1/playlists.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid playlist payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(ctx, w, http.StatusBadRequest, "name is required")
		return
	}

	now := h.now()
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Playlists.Create(ctx, playlist); err != nil {
		logger.Error("create playlist", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create playlist")
		return
	}

	respondData(ctx, w, http.StatusCreated, playlist, "playlist created")
}

// Get handles GET /api/v1/playlists/{playlistId}. Returns the hydrated
// detail view: member videos in playlist order plus the creator.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r, "playlistId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "playlist id is required")
		return
	}

	detail, err := h.Playlists.Detail(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist")
		return
	}
	if detail.Videos == nil {
		detail.Videos = []models.VideoWithOwner{}
	}

	respondData(ctx, w, http.StatusOK, detail, "playlist fetched")
}

// ListByUser handles GET /api/v1/playlists/user/{userId}.
func (h PlaylistHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := pathID(r, "userId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "user id is required")
		return
	}

	if _, err := h.Users.FindByID(ctx, userID); err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	playlists, err := h.Playlists.ListByOwner(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlists")
		return
	}
	if playlists == nil {
		playlists = []models.PlaylistDetail{}
	}
	for i := range playlists {
		if playlists[i].Videos == nil {
			playlists[i].Videos = []models.VideoWithOwner{}
		}
	}

	respondData(ctx, w, http.StatusOK, playlists, "playlists fetched")
}

// Update handles PATCH /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	playlist, ok := h.loadOwned(w, r, userID)
	if !ok {
		return
	}

	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid playlist payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		playlist.Name = name
	}
	if description := strings.TrimSpace(req.Description); description != "" {
		playlist.Description = description
	}

	if err := h.Playlists.Update(ctx, playlist); err != nil {
		respondStoreError(ctx, w, err, "playlist")
		return
	}

	respondData(ctx, w, http.StatusOK, playlist, "playlist updated")
}

// Delete handles DELETE /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	playlist, ok := h.loadOwned(w, r, userID)
	if !ok {
		return
	}

	if err := h.Playlists.Delete(ctx, playlist.ID); err != nil {
		respondStoreError(ctx, w, err, "playlist")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "playlist deleted")
}

// AddVideo handles PATCH /api/v1/playlists/add/{videoId}/{playlistId}.
// Adding a video that is already in the playlist returns 400.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	playlist, videoID, ok := h.loadMembershipTarget(w, r, userID)
	if !ok {
		return
	}

	if err := h.Playlists.AddVideo(ctx, playlist.ID, videoID); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusBadRequest, "video is already in the playlist")
			return
		}
		respondStoreError(ctx, w, err, "playlist")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideo handles PATCH /api/v1/playlists/remove/{videoId}/{playlistId}.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	playlist, videoID, ok := h.loadMembershipTarget(w, r, userID)
	if !ok {
		return
	}

	if err := h.Playlists.RemoveVideo(ctx, playlist.ID, videoID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondError(ctx, w, http.StatusNotFound, "video is not in the playlist")
			return
		}
		respondStoreError(ctx, w, err, "playlist")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "video removed from playlist")
}

// loadOwned fetches the playlist from the path and enforces ownership.
func (h PlaylistHandler) loadOwned(w http.ResponseWriter, r *http.Request, userID string) (models.Playlist, bool) {
	ctx := r.Context()

	id, ok := pathID(r, "playlistId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "playlist id is required")
		return models.Playlist{}, false
	}

	playlist, err := h.Playlists.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist")
		return models.Playlist{}, false
	}
	if !requireOwner(ctx, w, playlist, userID) {
		return models.Playlist{}, false
	}
	return playlist, true
}

// loadMembershipTarget resolves both path segments of the add/remove
// endpoints, verifying the video exists and the caller owns the playlist.
func (h PlaylistHandler) loadMembershipTarget(w http.ResponseWriter, r *http.Request, userID string) (models.Playlist, string, bool) {
	ctx := r.Context()

	videoID, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return models.Playlist{}, "", false
	}

	playlist, ok := h.loadOwned(w, r, userID)
	if !ok {
		return models.Playlist{}, "", false
	}

	if _, err := h.Videos.FindByID(ctx, videoID); err != nil {
		respondStoreError(ctx, w, err, "video")
		return models.Playlist{}, "", false
	}

	return playlist, videoID, true
}

func (h PlaylistHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
