package repositories

import (
	"context"

	"github.com/cliptube/backend/internal/models"
)

// UserRepository defines the data access contract for user accounts and the
// channel views built on top of them.
type UserRepository interface {
	Create(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByLogin(ctx context.Context, login string) (models.User, error)
	UpdateAccount(ctx context.Context, id, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, id, url string) (models.User, error)
	UpdateCoverImage(ctx context.Context, id, url string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetRefreshToken(ctx context.Context, id, token string) error
	ChannelProfile(ctx context.Context, username, viewerID string) (models.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
	RecordWatch(ctx context.Context, userID, videoID string) error
}

// ListVideosParams controls the paginated video listing.
type ListVideosParams struct {
	Query   string
	SortBy  string
	SortAsc bool
	Page    int
	Limit   int
}

// VideoRepository defines the data access contract for videos.
type VideoRepository interface {
	Create(ctx context.Context, video models.Video) error
	FindByID(ctx context.Context, id string) (models.Video, error)
	Update(ctx context.Context, video models.Video) error
	Delete(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (models.Video, error)
	IncrementViews(ctx context.Context, id string) error
	List(ctx context.Context, params ListVideosParams) ([]models.VideoWithOwner, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Video, error)
}

// CommentRepository defines the data access contract for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment models.Comment) error
	FindByID(ctx context.Context, id string) (models.Comment, error)
	Update(ctx context.Context, comment models.Comment) error
	Delete(ctx context.Context, id string) error
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error)
}

// TweetRepository defines the data access contract for tweets.
type TweetRepository interface {
	Create(ctx context.Context, tweet models.Tweet) error
	FindByID(ctx context.Context, id string) (models.Tweet, error)
	Update(ctx context.Context, tweet models.Tweet) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Tweet, error)
}

// LikeRepository toggles like markers and serves the liked-videos view.
type LikeRepository interface {
	Toggle(ctx context.Context, like models.Like) (bool, error)
	LikedVideos(ctx context.Context, userID string) ([]models.VideoWithOwner, error)
}

// PlaylistRepository defines the data access contract for playlists.
type PlaylistRepository interface {
	Create(ctx context.Context, playlist models.Playlist) error
	FindByID(ctx context.Context, id string) (models.Playlist, error)
	Update(ctx context.Context, playlist models.Playlist) error
	Delete(ctx context.Context, id string) error
	AddVideo(ctx context.Context, playlistID, videoID string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Detail(ctx context.Context, id string) (models.PlaylistDetail, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.PlaylistDetail, error)
}

// SubscriptionRepository toggles subscriptions and serves both directions of
// the subscription listings.
type SubscriptionRepository interface {
	Toggle(ctx context.Context, sub models.Subscription) (bool, error)
	ListSubscribers(ctx context.Context, channelID string) ([]models.SubscriberEntry, error)
	ListChannels(ctx context.Context, subscriberID string) ([]models.ChannelEntry, error)
}

// StatsRepository aggregates the per-channel dashboard counters.
type StatsRepository interface {
	ChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
}
