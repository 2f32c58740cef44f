package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// LikeHandler implements like toggle endpoints and the liked-videos view.
type LikeHandler struct {
	Likes    LikeStore
	Videos   VideoStore
	Comments CommentStore
	Tweets   TweetStore
	NowFunc  func() time.Time
}

// ToggleVideo handles POST /api/v1/likes/toggle/v/{videoId}.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r, "videoId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "video id is required")
		return
	}

	if _, err := h.Videos.FindByID(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "video")
		return
	}

	h.toggle(w, r, models.VideoLikeTarget(id))
}

// ToggleComment handles POST /api/v1/likes/toggle/c/{commentId}.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r, "commentId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "comment id is required")
		return
	}

	if _, err := h.Comments.FindByID(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "comment")
		return
	}

	h.toggle(w, r, models.CommentLikeTarget(id))
}

// ToggleTweet handles POST /api/v1/likes/toggle/t/{tweetId}.
func (h LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := pathID(r, "tweetId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "tweet id is required")
		return
	}

	if _, err := h.Tweets.FindByID(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "tweet")
		return
	}

	h.toggle(w, r, models.TweetLikeTarget(id))
}

// LikedVideos handles GET /api/v1/likes/videos.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	videos, err := h.Likes.LikedVideos(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "liked videos")
		return
	}
	if videos == nil {
		videos = []models.VideoWithOwner{}
	}

	respondData(ctx, w, http.StatusOK, videos, "liked videos fetched")
}

func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, target models.LikeTarget) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	like := models.Like{
		ID:        uuid.NewString(),
		Target:    target,
		LikedBy:   userID,
		CreatedAt: h.now(),
	}

	liked, err := h.Likes.Toggle(ctx, like)
	if err != nil {
		logging.FromContext(ctx).Error("toggle like", "kind", target.Kind, "targetId", target.ID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to toggle like")
		return
	}

	message := "unliked"
	if liked {
		message = "liked"
	}
	respondData(ctx, w, http.StatusOK, toggleResponse{Active: liked}, message)
}

func (h LikeHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

// toggleResponse reports the state after a toggle: true when the like or
// subscription is now active.
type toggleResponse struct {
	Active bool `json:"active"`
}
