package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func TestCreateTweetStoresAuthor(t *testing.T) {
	tweets := newFakeTweetStore()
	handler := TweetHandler{Tweets: tweets}

	req := authedRequest(http.MethodPost, "/api/v1/tweets", "user-1", contentBody(t, "hello world"))

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	for _, tweet := range tweets.tweets {
		if tweet.OwnerID != "user-1" || tweet.Content != "hello world" {
			t.Fatalf("unexpected stored tweet: %+v", tweet)
		}
	}
}

func TestListTweetsForMissingUserReturns404(t *testing.T) {
	handler := TweetHandler{Tweets: newFakeTweetStore(), Users: newFakeUserStore()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tweets/user/ghost", nil)
	req.SetPathValue("userId", "ghost")

	rec := httptest.NewRecorder()
	handler.ListByUser(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateForeignTweetReturns403(t *testing.T) {
	tweets := newFakeTweetStore(models.Tweet{ID: "t-1", OwnerID: "author-1", Content: "mine"})
	handler := TweetHandler{Tweets: tweets}

	req := authedRequest(http.MethodPatch, "/api/v1/tweets/t-1", "intruder", contentBody(t, "stolen"))
	req.SetPathValue("tweetId", "t-1")

	rec := httptest.NewRecorder()
	handler.Update(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := tweets.tweets["t-1"].Content; got != "mine" {
		t.Fatalf("expected content unchanged, got %q", got)
	}
}

func TestDeleteOwnTweetSucceeds(t *testing.T) {
	tweets := newFakeTweetStore(models.Tweet{ID: "t-1", OwnerID: "author-1"})
	handler := TweetHandler{Tweets: tweets}

	req := authedRequest(http.MethodDelete, "/api/v1/tweets/t-1", "author-1", nil)
	req.SetPathValue("tweetId", "t-1")

	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(tweets.tweets) != 0 {
		t.Fatal("expected tweet removed")
	}
}
