package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func toggleVideoLike(t *testing.T, handler LikeHandler, videoID, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := authedRequest(http.MethodPost, "/api/v1/likes/toggle/v/"+videoID, userID, nil)
	req.SetPathValue("videoId", videoID)
	rec := httptest.NewRecorder()
	handler.ToggleVideo(rec, req)
	return rec
}

func TestToggleVideoLikeParity(t *testing.T) {
	likes := newFakeLikeStore()
	handler := LikeHandler{
		Likes:  likes,
		Videos: newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	// An odd number of toggles leaves the like active, an even number clears it.
	first := toggleVideoLike(t, handler, "vid-1", "user-1")
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}
	if resp := decodeEnvelope(t, first); resp.Message != "liked" {
		t.Fatalf("expected liked after first toggle, got %q", resp.Message)
	}

	second := toggleVideoLike(t, handler, "vid-1", "user-1")
	if resp := decodeEnvelope(t, second); resp.Message != "unliked" {
		t.Fatalf("expected unliked after second toggle, got %q", resp.Message)
	}

	third := toggleVideoLike(t, handler, "vid-1", "user-1")
	if resp := decodeEnvelope(t, third); resp.Message != "liked" {
		t.Fatalf("expected liked after third toggle, got %q", resp.Message)
	}
	if len(likes.active) != 1 {
		t.Fatalf("expected exactly one active like, got %d", len(likes.active))
	}
}

func TestToggleLikeIsPerUser(t *testing.T) {
	likes := newFakeLikeStore()
	handler := LikeHandler{
		Likes:  likes,
		Videos: newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	toggleVideoLike(t, handler, "vid-1", "user-1")
	toggleVideoLike(t, handler, "vid-1", "user-2")

	if len(likes.active) != 2 {
		t.Fatalf("expected independent likes per user, got %d active", len(likes.active))
	}
}

func TestToggleLikeMissingVideoReturns404(t *testing.T) {
	handler := LikeHandler{Likes: newFakeLikeStore(), Videos: newFakeVideoStore()}

	rec := toggleVideoLike(t, handler, "ghost", "user-1")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestToggleCommentAndTweetLikesAreDistinct(t *testing.T) {
	likes := newFakeLikeStore()
	handler := LikeHandler{
		Likes:    likes,
		Comments: newFakeCommentStore(models.Comment{ID: "c-1", VideoID: "vid-1", OwnerID: "owner-1"}),
		Tweets:   newFakeTweetStore(models.Tweet{ID: "c-1", OwnerID: "owner-1"}),
	}

	// Same id, different target kinds: both likes coexist.
	reqC := authedRequest(http.MethodPost, "/api/v1/likes/toggle/c/c-1", "user-1", nil)
	reqC.SetPathValue("commentId", "c-1")
	recC := httptest.NewRecorder()
	handler.ToggleComment(recC, reqC)
	if recC.Code != http.StatusOK {
		t.Fatalf("expected 200 for comment toggle, got %d", recC.Code)
	}

	reqT := authedRequest(http.MethodPost, "/api/v1/likes/toggle/t/c-1", "user-1", nil)
	reqT.SetPathValue("tweetId", "c-1")
	recT := httptest.NewRecorder()
	handler.ToggleTweet(recT, reqT)
	if recT.Code != http.StatusOK {
		t.Fatalf("expected 200 for tweet toggle, got %d", recT.Code)
	}

	if len(likes.active) != 2 {
		t.Fatalf("expected likes on different kinds to coexist, got %d active", len(likes.active))
	}
}
