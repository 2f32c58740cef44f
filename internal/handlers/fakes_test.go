package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

type fakeUserStore struct {
	users   map[string]models.User
	watched []string
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByLogin(_ context.Context, login string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) UpdateAccount(_ context.Context, id, fullName, email string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.FullName = fullName
	user.Email = email
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdateAvatar(_ context.Context, id, url string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.Avatar = url
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdateCoverImage(_ context.Context, id, url string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.CoverImage = url
	s.users[id] = user
	return user, nil
}

func (s *fakeUserStore) UpdatePassword(_ context.Context, id, hash string) error {
	user, ok := s.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	user.Password = hash
	s.users[id] = user
	return nil
}

func (s *fakeUserStore) ChannelProfile(_ context.Context, username, viewerID string) (models.ChannelProfile, error) {
	for _, user := range s.users {
		if user.Username == username {
			return models.ChannelProfile{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				FullName: user.FullName,
			}, nil
		}
	}
	return models.ChannelProfile{}, repositories.ErrNotFound
}

func (s *fakeUserStore) WatchHistory(_ context.Context, userID string) ([]models.VideoWithOwner, error) {
	return nil, nil
}

func (s *fakeUserStore) RecordWatch(_ context.Context, userID, videoID string) error {
	s.watched = append(s.watched, userID+":"+videoID)
	return nil
}

type fakeVideoStore struct {
	videos     map[string]models.Video
	listParams repositories.ListVideosParams
}

func newFakeVideoStore(videos ...models.Video) *fakeVideoStore {
	s := &fakeVideoStore{videos: map[string]models.Video{}}
	for _, v := range videos {
		s.videos[v.ID] = v
	}
	return s
}

func (s *fakeVideoStore) Create(_ context.Context, video models.Video) error {
	s.videos[video.ID] = video
	return nil
}

func (s *fakeVideoStore) FindByID(_ context.Context, id string) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (s *fakeVideoStore) Update(_ context.Context, video models.Video) error {
	if _, ok := s.videos[video.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.videos[video.ID] = video
	return nil
}

func (s *fakeVideoStore) Delete(_ context.Context, id string) error {
	if _, ok := s.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *fakeVideoStore) SetPublished(_ context.Context, id string, published bool) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	video.IsPublished = published
	s.videos[id] = video
	return video, nil
}

func (s *fakeVideoStore) IncrementViews(_ context.Context, id string) error {
	video, ok := s.videos[id]
	if !ok {
		return repositories.ErrNotFound
	}
	video.Views++
	s.videos[id] = video
	return nil
}

func (s *fakeVideoStore) List(_ context.Context, params repositories.ListVideosParams) ([]models.VideoWithOwner, error) {
	s.listParams = params
	var out []models.VideoWithOwner
	for _, v := range s.videos {
		out = append(out, models.VideoWithOwner{Video: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeVideoStore) ListByOwner(_ context.Context, ownerID string) ([]models.Video, error) {
	var out []models.Video
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeCommentStore struct {
	comments map[string]models.Comment
}

func newFakeCommentStore(comments ...models.Comment) *fakeCommentStore {
	s := &fakeCommentStore{comments: map[string]models.Comment{}}
	for _, c := range comments {
		s.comments[c.ID] = c
	}
	return s
}

func (s *fakeCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) FindByID(_ context.Context, id string) (models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	return comment, nil
}

func (s *fakeCommentStore) Update(_ context.Context, comment models.Comment) error {
	if _, ok := s.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.comments[comment.ID] = comment
	return nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) ListByVideo(_ context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error) {
	var out []models.CommentWithOwner
	for _, c := range s.comments {
		if c.VideoID == videoID {
			out = append(out, models.CommentWithOwner{Comment: c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, nil
	}
	end := start + limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

type fakeTweetStore struct {
	tweets map[string]models.Tweet
}

func newFakeTweetStore(tweets ...models.Tweet) *fakeTweetStore {
	s := &fakeTweetStore{tweets: map[string]models.Tweet{}}
	for _, t := range tweets {
		s.tweets[t.ID] = t
	}
	return s
}

func (s *fakeTweetStore) Create(_ context.Context, tweet models.Tweet) error {
	s.tweets[tweet.ID] = tweet
	return nil
}

func (s *fakeTweetStore) FindByID(_ context.Context, id string) (models.Tweet, error) {
	tweet, ok := s.tweets[id]
	if !ok {
		return models.Tweet{}, repositories.ErrNotFound
	}
	return tweet, nil
}

func (s *fakeTweetStore) Update(_ context.Context, tweet models.Tweet) error {
	if _, ok := s.tweets[tweet.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.tweets[tweet.ID] = tweet
	return nil
}

func (s *fakeTweetStore) Delete(_ context.Context, id string) error {
	if _, ok := s.tweets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tweets, id)
	return nil
}

func (s *fakeTweetStore) ListByOwner(_ context.Context, ownerID string) ([]models.Tweet, error) {
	var out []models.Tweet
	for _, t := range s.tweets {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// fakeLikeStore toggles on a (user, kind, target) key the way the partial
// unique indexes do in PostgreSQL.
type fakeLikeStore struct {
	active map[string]bool
}

func newFakeLikeStore() *fakeLikeStore {
	return &fakeLikeStore{active: map[string]bool{}}
}

func (s *fakeLikeStore) Toggle(_ context.Context, like models.Like) (bool, error) {
	key := fmt.Sprintf("%s|%s|%s", like.LikedBy, like.Target.Kind, like.Target.ID)
	if s.active[key] {
		delete(s.active, key)
		return false, nil
	}
	s.active[key] = true
	return true, nil
}

func (s *fakeLikeStore) LikedVideos(_ context.Context, userID string) ([]models.VideoWithOwner, error) {
	return nil, nil
}

type fakePlaylistStore struct {
	playlists map[string]models.Playlist
	members   map[string][]string
}

func newFakePlaylistStore(playlists ...models.Playlist) *fakePlaylistStore {
	s := &fakePlaylistStore{playlists: map[string]models.Playlist{}, members: map[string][]string{}}
	for _, p := range playlists {
		s.playlists[p.ID] = p
	}
	return s
}

func (s *fakePlaylistStore) Create(_ context.Context, playlist models.Playlist) error {
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *fakePlaylistStore) FindByID(_ context.Context, id string) (models.Playlist, error) {
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (s *fakePlaylistStore) Update(_ context.Context, playlist models.Playlist) error {
	if _, ok := s.playlists[playlist.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *fakePlaylistStore) Delete(_ context.Context, id string) error {
	if _, ok := s.playlists[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.playlists, id)
	delete(s.members, id)
	return nil
}

func (s *fakePlaylistStore) AddVideo(_ context.Context, playlistID, videoID string) error {
	for _, member := range s.members[playlistID] {
		if member == videoID {
			return repositories.ErrConflict
		}
	}
	s.members[playlistID] = append(s.members[playlistID], videoID)
	return nil
}

func (s *fakePlaylistStore) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	members := s.members[playlistID]
	for i, member := range members {
		if member == videoID {
			s.members[playlistID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *fakePlaylistStore) Detail(_ context.Context, id string) (models.PlaylistDetail, error) {
	playlist, ok := s.playlists[id]
	if !ok {
		return models.PlaylistDetail{}, repositories.ErrNotFound
	}
	return models.PlaylistDetail{ID: playlist.ID, Name: playlist.Name, Description: playlist.Description}, nil
}

func (s *fakePlaylistStore) ListByOwner(_ context.Context, ownerID string) ([]models.PlaylistDetail, error) {
	var out []models.PlaylistDetail
	for _, p := range s.playlists {
		if p.OwnerID == ownerID {
			out = append(out, models.PlaylistDetail{ID: p.ID, Name: p.Name, Description: p.Description})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSubscriptionStore struct {
	active map[string]bool
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{active: map[string]bool{}}
}

func (s *fakeSubscriptionStore) Toggle(_ context.Context, sub models.Subscription) (bool, error) {
	key := sub.SubscriberID + "|" + sub.ChannelID
	if s.active[key] {
		delete(s.active, key)
		return false, nil
	}
	s.active[key] = true
	return true, nil
}

func (s *fakeSubscriptionStore) ListSubscribers(_ context.Context, channelID string) ([]models.SubscriberEntry, error) {
	return nil, nil
}

func (s *fakeSubscriptionStore) ListChannels(_ context.Context, subscriberID string) ([]models.ChannelEntry, error) {
	return nil, nil
}

type fakeStatsProvider struct {
	stats map[string]models.ChannelStats
}

func (s *fakeStatsProvider) ChannelStats(_ context.Context, channelID string) (models.ChannelStats, error) {
	return s.stats[channelID], nil
}

type fakeMediaStore struct {
	saved map[string]string
	err   error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{saved: map[string]string{}}
}

func (s *fakeMediaStore) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	url := "https://cdn.example.com/" + name
	s.saved[name] = url
	return url, nil
}

type fakeCleaner struct {
	enqueued []string
}

func (c *fakeCleaner) Enqueue(_ context.Context, location string) error {
	c.enqueued = append(c.enqueued, location)
	return nil
}

type fakeTokenManager struct {
	issued  map[string]models.TokenPair
	revoked []string
}

func newFakeTokenManager() *fakeTokenManager {
	return &fakeTokenManager{issued: map[string]models.TokenPair{}}
}

func (m *fakeTokenManager) Issue(_ context.Context, userID string) (models.TokenPair, error) {
	pair := models.TokenPair{AccessToken: "access-" + userID, RefreshToken: "refresh-" + userID}
	m.issued[userID] = pair
	return pair, nil
}

func (m *fakeTokenManager) Refresh(_ context.Context, refreshToken string) (models.TokenPair, error) {
	for userID, pair := range m.issued {
		if pair.RefreshToken == refreshToken {
			return m.Issue(context.Background(), userID)
		}
	}
	return models.TokenPair{}, errors.New("unknown refresh token")
}

func (m *fakeTokenManager) Revoke(_ context.Context, userID string) error {
	m.revoked = append(m.revoked, userID)
	return nil
}

// decodeEnvelope unpacks the response envelope, failing the test on malformed
// bodies.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response envelope: %v", err)
	}
	return resp
}
