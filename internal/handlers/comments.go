package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// CommentHandler implements comment endpoints.
type CommentHandler struct {
	Comments CommentStore
	Videos   VideoStore
	NowFunc  func() time.Time
}

// ListByVideo handles GET /api/v1/comments/{videoId}.
func (h CommentHandler) ListByVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	if _, err := h.Videos.FindByID(ctx, videoID); err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	page, limit := pagination(r)
	comments, err := h.Comments.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		respondStoreError(ctx, w, err, "comments")
		return
	}
	if comments == nil {
		comments = []models.CommentWithOwner{}
	}

	respondData(ctx, w, http.StatusOK, comments, "comments fetched")
}

// Create handles POST /api/v1/comments/{videoId}.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	videoID, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	if _, err := h.Videos.FindByID(ctx, videoID); err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	now := h.now()
	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		OwnerID:   userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Comments.Create(ctx, comment); err != nil {
		logger.Error("create comment", "videoId", videoID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to add comment")
		return
	}

	respondData(ctx, w, http.StatusCreated, comment, "comment added")
}

// Update handles PATCH /api/v1/comments/c/{commentId}. Only the author may
// edit their comment.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "commentId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "comment id is required")
		return
	}

	comment, err := h.Comments.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "comment")
		return
	}
	if !requireOwner(ctx, w, comment, userID) {
		return
	}

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	comment.Content = content
	if err := h.Comments.Update(ctx, comment); err != nil {
		respondStoreError(ctx, w, err, "comment")
		return
	}

	respondData(ctx, w, http.StatusOK, comment, "comment updated")
}

// Delete handles DELETE /api/v1/comments/c/{commentId}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "commentId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "comment id is required")
		return
	}

	comment, err := h.Comments.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "comment")
		return
	}
	if !requireOwner(ctx, w, comment, userID) {
		return
	}

	if err := h.Comments.Delete(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "comment")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "comment deleted")
}

func (h CommentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

// decodeContent reads a {"content": "..."} body shared by the comment and
// tweet endpoints. Responds with 400 and returns false on failure.
func decodeContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	ctx := r.Context()

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.FromContext(ctx).Warn("invalid content payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return "", false
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return "", false
	}
	return content, true
}

type contentRequest struct {
	Content string `json:"content"`
}
