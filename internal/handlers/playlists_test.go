package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliptube/backend/internal/models"
)

func playlistMembershipRequest(action, videoID, playlistID, userID string) *http.Request {
	req := authedRequest(http.MethodPatch, "/api/v1/playlists/"+action+"/"+videoID+"/"+playlistID, userID, nil)
	req.SetPathValue("videoId", videoID)
	req.SetPathValue("playlistId", playlistID)
	return req
}

func TestAddVideoTwiceReturns400(t *testing.T) {
	playlists := newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1"})
	handler := PlaylistHandler{
		Playlists: playlists,
		Videos:    newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	rec := httptest.NewRecorder()
	handler.AddVideo(rec, playlistMembershipRequest("add", "vid-1", "pl-1", "owner-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on first add, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.AddVideo(rec, playlistMembershipRequest("add", "vid-1", "pl-1", "owner-1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate add, got %d", rec.Code)
	}
	if got := len(playlists.members["pl-1"]); got != 1 {
		t.Fatalf("expected single membership row, got %d", got)
	}
}

func TestRemoveVideoNotInPlaylistReturns404(t *testing.T) {
	handler := PlaylistHandler{
		Playlists: newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1"}),
		Videos:    newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	rec := httptest.NewRecorder()
	handler.RemoveVideo(rec, playlistMembershipRequest("remove", "vid-1", "pl-1", "owner-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddVideoToForeignPlaylistReturns403(t *testing.T) {
	handler := PlaylistHandler{
		Playlists: newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1"}),
		Videos:    newFakeVideoStore(models.Video{ID: "vid-1", OwnerID: "owner-1"}),
	}

	rec := httptest.NewRecorder()
	handler.AddVideo(rec, playlistMembershipRequest("add", "vid-1", "pl-1", "intruder"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAddMissingVideoReturns404(t *testing.T) {
	handler := PlaylistHandler{
		Playlists: newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1"}),
		Videos:    newFakeVideoStore(),
	}

	rec := httptest.NewRecorder()
	handler.AddVideo(rec, playlistMembershipRequest("add", "ghost", "pl-1", "owner-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreatePlaylistRequiresName(t *testing.T) {
	handler := PlaylistHandler{Playlists: newFakePlaylistStore()}

	payload, _ := json.Marshal(map[string]string{"description": "no name"})
	req := authedRequest(http.MethodPost, "/api/v1/playlists", "owner-1", bytes.NewBuffer(payload))

	rec := httptest.NewRecorder()
	handler.Create(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteForeignPlaylistReturns403(t *testing.T) {
	playlists := newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1"})
	handler := PlaylistHandler{Playlists: playlists}

	req := authedRequest(http.MethodDelete, "/api/v1/playlists/pl-1", "intruder", nil)
	req.SetPathValue("playlistId", "pl-1")

	rec := httptest.NewRecorder()
	handler.Delete(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if _, ok := playlists.playlists["pl-1"]; !ok {
		t.Fatal("expected playlist to survive the forbidden delete")
	}
}

func TestGetPlaylistReturnsEmptyVideosSlice(t *testing.T) {
	handler := PlaylistHandler{Playlists: newFakePlaylistStore(models.Playlist{ID: "pl-1", OwnerID: "owner-1", Name: "Mix"})}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/playlists/pl-1", nil)
	req.SetPathValue("playlistId", "pl-1")

	rec := httptest.NewRecorder()
	handler.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"videos":[]`)) {
		t.Fatalf("expected empty videos array in body: %s", rec.Body.String())
	}
}
