package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func contentBody(t *testing.T, content string) *bytes.Buffer {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	return bytes.NewBuffer(payload)
}

func TestCreateCommentOnMissingVideoReturns404(t *testing.T) {
	handler := CommentHandler{Comments: newFakeCommentStore(), Videos: newFakeVideoStore()}

	req := authedRequest(http.MethodPost, "/api/v1/comments/ghost", "user-1", contentBody(t, "nice"))
	req.SetPathValue("videoId", "ghost")

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateCommentStoresAuthorAndVideo(t *testing.T) {
	comments := newFakeCommentStore()
	handler := CommentHandler{
		Comments: comments,
		Videos:   newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	req := authedRequest(http.MethodPost, "/api/v1/comments/vid-1", "user-1", contentBody(t, "great video"))
	req.SetPathValue("videoId", "vid-1")

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(comments.comments) != 1 {
		t.Fatalf("expected one comment, got %d", len(comments.comments))
	}
	for _, comment := range comments.comments {
		if comment.OwnerID != "user-1" || comment.VideoID != "vid-1" || comment.Content != "great video" {
			t.Fatalf("unexpected stored comment: %+v", comment)
		}
	}
}

func TestCreateCommentRejectsBlankContent(t *testing.T) {
	handler := CommentHandler{
		Comments: newFakeCommentStore(),
		Videos:   newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	req := authedRequest(http.MethodPost, "/api/v1/comments/vid-1", "user-1", contentBody(t, "   "))
	req.SetPathValue("videoId", "vid-1")

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateForeignCommentReturns403(t *testing.T) {
	comments := newFakeCommentStore(models.Comment{ID: "c-1", VideoID: "vid-1", OwnerID: "author-1", Content: "original"})
	handler := CommentHandler{Comments: comments}

	req := authedRequest(http.MethodPatch, "/api/v1/comments/c/c-1", "intruder", contentBody(t, "edited"))
	req.SetPathValue("commentId", "c-1")

	rec := httptest.NewRecorder()
	handler.Update(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if got := comments.comments["c-1"].Content; got != "original" {
		t.Fatalf("expected content unchanged, got %q", got)
	}
}

func TestDeleteOwnCommentSucceeds(t *testing.T) {
	comments := newFakeCommentStore(models.Comment{ID: "c-1", VideoID: "vid-1", OwnerID: "author-1"})
	handler := CommentHandler{Comments: comments}

	req := authedRequest(http.MethodDelete, "/api/v1/comments/c/c-1", "author-1", nil)
	req.SetPathValue("commentId", "c-1")

	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(comments.comments) != 0 {
		t.Fatal("expected comment removed")
	}
}

func TestListCommentsPaginates(t *testing.T) {
	store := newFakeCommentStore(
		models.Comment{ID: "c-1", VideoID: "vid-1"},
		models.Comment{ID: "c-2", VideoID: "vid-1"},
		models.Comment{ID: "c-3", VideoID: "vid-1"},
	)
	handler := CommentHandler{
		Comments: store,
		Videos:   newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/comments/vid-1?page=2&limit=2", nil)
	req.SetPathValue("videoId", "vid-1")

	rec := httptest.NewRecorder()
	handler.ListByVideo(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []models.CommentWithOwner `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "c-3" {
		t.Fatalf("expected second page with c-3, got %+v", resp.Data)
	}
}
