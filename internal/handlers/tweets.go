package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
)

// TweetHandler implements tweet endpoints.
type TweetHandler struct {
	Tweets  TweetStore
	Users   UserStore
	NowFunc func() time.Time
}

// Create handles POST /api/v1/tweets.
func (h TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	now := h.now()
	tweet := models.Tweet{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Tweets.Create(ctx, tweet); err != nil {
		logging.FromContext(ctx).Error("create tweet", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create tweet")
		return
	}

	respondData(ctx, w, http.StatusCreated, tweet, "tweet created")
}

// ListByUser handles GET /api/v1/tweets/user/{userId}.
func (h TweetHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
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

	tweets, err := h.Tweets.ListByOwner(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "tweets")
		return
	}
	if tweets == nil {
		tweets = []models.Tweet{}
	}

	respondData(ctx, w, http.StatusOK, tweets, "tweets fetched")
}

// Update handles PATCH /api/v1/tweets/{tweetId}.
func (h TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "tweetId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "tweet id is required")
		return
	}

	tweet, err := h.Tweets.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "tweet")
		return
	}
	if !requireOwner(ctx, w, tweet, userID) {
		return
	}

	content, ok := decodeContent(w, r)
	if !ok {
		return
	}

	tweet.Content = content
	if err := h.Tweets.Update(ctx, tweet); err != nil {
		respondStoreError(ctx, w, err, "tweet")
		return
	}

	respondData(ctx, w, http.StatusOK, tweet, "tweet updated")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}.
func (h TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	id, ok := pathID(r, "tweetId")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "tweet id is required")
		return
	}

	tweet, err := h.Tweets.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "tweet")
		return
	}
	if !requireOwner(ctx, w, tweet, userID) {
		return
	}

	if err := h.Tweets.Delete(ctx, id); err != nil {
		respondStoreError(ctx, w, err, "tweet")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "tweet deleted")
}

func (h TweetHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
