package handlers

import (
	"context"
	"io"

	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
)

// UserStore captures the persistence operations required by the user handlers.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByLogin(ctx context.Context, login string) (models.User, error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// TokenManager issues, refreshes, and revokes authentication tokens.
type TokenManager interface {
	Issue(ctx context.Context, userID string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Revoke(ctx context.Context, userID string) error
}

// VideoStore captures persistence for video records and listings.
type VideoStore interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (models.Video, error)
	IncrementViews(ctx context.Context, id string) error
	List(ctx context.Context, params repositories.ListVideosParams) ([]models.VideoWithOwner, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Video, error)
}

// CommentStore captures persistence for comments.
type CommentStore interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id string) error
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error)
}

// TweetStore captures persistence for tweets.
type TweetStore interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tweet, error)
}

// LikeStore toggles like markers and serves the liked-videos view.
type LikeStore interface {
	Toggle(ctx context.Context, like models.Like) (bool, error)
	LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
}

// PlaylistStore captures persistence for playlists and their membership.
type PlaylistStore interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Detail(ctx context.Context, id string) (models.PlaylistDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistDetail, error)
}

// SubscriptionStore toggles subscriptions and serves both listing directions.
type SubscriptionStore interface {
	Toggle(ctx context.Context, sub models.Subscription) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.SubscriberEntry, error)
	ListChannels(ctx context.Context, subscriberID string) ([]models.ChannelEntry, error)
}

// StatsProvider serves the per-channel dashboard counters.
type StatsProvider interface {
	ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
}

// MediaStore persists uploaded media files.
type MediaStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// AssetCleaner schedules background deletion of superseded media.
type AssetCleaner interface {
	Enqueue(ctx context.Context, location string) error
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Tokens        TokenManager
	Videos        VideoStore
	Comments      CommentStore
	Tweets        TweetStore
	Likes         LikeStore
	Playlists     PlaylistStore
	Subscriptions SubscriptionStore
	Stats         StatsProvider
	Media         MediaStore
	Cleaner       AssetCleaner
	AuthLimiter   RateLimiter
}
