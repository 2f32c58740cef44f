package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

// VideoHandler implements video publishing and listing endpoints.
type VideoHandler struct {
	Videos  VideoStore
	Users   UserStore
	Media   MediaStore
	Cleaner AssetCleaner
	NowFunc func() time.Time
}

// List handles GET /api/v1/videos. Supports query (title/description
// search), sortBy, sortType and pagination parameters.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit := pagination(r)
	params := repositories.ListVideosParams{
		Query:   strings.TrimSpace(r.URL.Query().Get("query")),
		SortBy:  strings.TrimSpace(r.URL.Query().Get("sortBy")),
		SortAsc: strings.EqualFold(r.URL.Query().Get("sortType"), "asc"),
		Page:    page,
		Limit:   limit,
	}

	videos, err := h.Videos.List(ctx, params)
	if err != nil {
		respondStoreError(ctx, w, err, "videos")
		return
	}
	if videos == nil {
		videos = []models.VideoWithOwner{}
	}

	respondData(ctx, w, http.StatusOK, videos, "videos fetched")
}

// Publish handles POST /api/v1/videos. The body is multipart: title,
// description and duration fields plus the video file and a thumbnail.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	if h.Media == nil {
		logger.Error("media store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "media storage unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("invalid publish payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))
	if title == "" {
		respondError(ctx, w, http.StatusBadRequest, "title is required")
		return
	}

	duration, err := strconv.ParseFloat(r.FormValue("duration"), 64)
	if err != nil || duration < 0 {
		respondError(ctx, w, http.StatusBadRequest, "duration must be a non-negative number")
		return
	}

	id := uuid.NewString()

	videoURL, err := h.saveUpload(r, "videoFile", id)
	if err != nil {
		logger.Warn("video upload failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "video file is required")
		return
	}
	thumbnailURL, err := h.saveUpload(r, "thumbnail", id+"-thumb")
	if err != nil {
		logger.Warn("thumbnail upload failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "thumbnail file is required")
		return
	}

	now := h.now()
	video := models.Video{
		ID:          id,
		OwnerID:     userID,
		Title:       title,
		Description: description,
		VideoFile:   videoURL,
		Thumbnail:   thumbnailURL,
		Duration:    duration,
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Videos.Create(ctx, video); err != nil {
		logger.Error("create video", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to publish video")
		return
	}

	respondData(ctx, w, http.StatusCreated, video, "video published")
}

// Get handles GET /api/v1/videos/{videoId}. Fetching a video counts a view
// and, for authenticated viewers, records it in their watch history.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	video, err := h.Videos.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	if err := h.Videos.IncrementViews(ctx, id); err != nil {
		logger.Warn("increment views", "videoId", id, "error", err)
	} else {
		video.Views++
	}

	if viewerID := auth.UserIDFromContext(ctx); viewerID != "" && h.Users != nil {
		if err := h.Users.RecordWatch(ctx, viewerID, id); err != nil {
			logger.Warn("record watch", "videoId", id, "userId", viewerID, "error", err)
		}
	}

	respondData(ctx, w, http.StatusOK, video, "video fetched")
}

// Update handles PATCH /api/v1/videos/{videoId}. Title, description and the
// thumbnail may change; only the owner may call it.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	video, err := h.Videos.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}
	if !requireOwner(ctx, w, video, userID) {
		return
	}

	var oldThumbnail string
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			logger.Warn("invalid update payload", "error", err)
			respondError(ctx, w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		if title := strings.TrimSpace(r.FormValue("title")); title != "" {
			video.Title = title
		}
		if description := strings.TrimSpace(r.FormValue("description")); description != "" {
			video.Description = description
		}
		if url, err := h.saveUpload(r, "thumbnail", id+"-thumb-"+uuid.NewString()); err == nil {
			oldThumbnail = video.Thumbnail
			video.Thumbnail = url
		}
	} else {
		var req updateVideoRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("invalid update payload", "error", err)
			respondError(ctx, w, http.StatusBadRequest, "invalid request body")
			return
		}
		if title := strings.TrimSpace(req.Title); title != "" {
			video.Title = title
		}
		if description := strings.TrimSpace(req.Description); description != "" {
			video.Description = description
		}
	}

	if err := h.Videos.Update(ctx, video); err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	h.cleanup(ctx, oldThumbnail)

	respondData(ctx, w, http.StatusOK, video, "video updated")
}

// Delete handles DELETE /api/v1/videos/{videoId}. Only the owner may call
// it; the stored media assets are cleaned up afterwards.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	video, err := h.Videos.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}
	if !requireOwner(ctx, w, video, userID) {
		return
	}

	if err := h.Videos.Delete(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	h.cleanup(ctx, video.VideoFile)
	h.cleanup(ctx, video.Thumbnail)

	respondData(ctx, w, http.StatusOK, nil, "video deleted")
}

// TogglePublish handles PATCH /api/v1/videos/toggle/publish/{videoId}.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	video, err := h.Videos.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}
	if !requireOwner(ctx, w, video, userID) {
		return
	}

	updated, err := h.Videos.SetPublished(ctx, id, !video.IsPublished)
	if err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	respondData(ctx, w, http.StatusOK, updated, "publish state toggled")
}

func (h VideoHandler) saveUpload(r *http.Request, field, id string) (string, error) {
	if h.Media == nil {
		return "", errors.New("media store unavailable")
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.Media.Save(r.Context(), storage.KeyFor(id, header.Filename), file)
}

func (h VideoHandler) cleanup(ctx context.Context, location string) {
	if h.Cleaner == nil || location == "" {
		return
	}
	if err := h.Cleaner.Enqueue(ctx, location); err != nil {
		logging.FromContext(ctx).Warn("enqueue asset cleanup", "location", location, "error", err)
	}
}

func (h VideoHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type updateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
