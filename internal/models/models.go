package models

import "time"

// User represents an account within the ClipTube platform. The password hash
// and current refresh token never leave the server.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage,omitempty"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the projection of a user safe to embed in other payloads.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

// Public strips a user down to its embeddable projection.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// Video is an uploaded clip. The owner reference is immutable after creation.
type Video struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy implements Owned.
func (v Video) OwnedBy() string { return v.OwnerID }

// Comment is attached to exactly one video.
type Comment struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy implements Owned.
func (c Comment) OwnedBy() string { return c.OwnerID }

// Tweet is a short text post on a user's channel.
type Tweet struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy implements Owned.
func (t Tweet) OwnedBy() string { return t.OwnerID }

// LikeTargetKind discriminates the entity a like points at.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
	LikeTargetTweet   LikeTargetKind = "tweet"
)

// LikeTarget is the tagged union of likeable entities. Exactly one target is
// referenced per like; constructing targets through this type keeps the
// invariant out of runtime checks.
type LikeTarget struct {
	Kind LikeTargetKind `json:"kind"`
	ID   string         `json:"id"`
}

// VideoLikeTarget references a video.
func VideoLikeTarget(id string) LikeTarget { return LikeTarget{Kind: LikeTargetVideo, ID: id} }

// CommentLikeTarget references a comment.
func CommentLikeTarget(id string) LikeTarget { return LikeTarget{Kind: LikeTargetComment, ID: id} }

// TweetLikeTarget references a tweet.
func TweetLikeTarget(id string) LikeTarget { return LikeTarget{Kind: LikeTargetTweet, ID: id} }

// Like marks that a user liked a single target entity. At most one like may
// exist per (likedBy, target) pair.
type Like struct {
	ID        string     `json:"id"`
	Target    LikeTarget `json:"target"`
	LikedBy   string     `json:"likedBy"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Playlist groups an ordered set of videos. Membership lives in its own
// table so duplicates are rejected by the store rather than checked in code.
type Playlist struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OwnedBy implements Owned.
func (p Playlist) OwnedBy() string { return p.OwnerID }

// Subscription links a subscriber to a channel (another user).
type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber"`
	ChannelID    string    `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Owned is implemented by every entity gated by the ownership check.
type Owned interface {
	OwnedBy() string
}

// ---------------------------------------------------------------------------
// Read models produced by the relational view queries.
// ---------------------------------------------------------------------------

// ChannelProfile is the public face of a user's channel as seen by a viewer.
type ChannelProfile struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"fullName"`
	Avatar            string `json:"avatar"`
	CoverImage        string `json:"coverImage,omitempty"`
	SubscribersCount  int64  `json:"subscribersCount"`
	SubscribedToCount int64  `json:"channelSubscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// VideoWithOwner is a video joined to its owner's public projection.
type VideoWithOwner struct {
	Video
	Owner PublicUser `json:"owner"`
}

// CommentWithOwner is a comment joined to its author's public projection.
type CommentWithOwner struct {
	Comment
	Owner PublicUser `json:"owner"`
}

// PlaylistDetail is a playlist hydrated with its member videos (in playlist
// order, each carrying its owner) and the playlist creator.
type PlaylistDetail struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Videos      []VideoWithOwner `json:"videos"`
	CreatedBy   PublicUser       `json:"createdBy"`
}

// SubscriberEntry is one row of a channel's subscriber listing.
type SubscriberEntry struct {
	Subscriber   PublicUser `json:"subscriber"`
	SubscribedAt time.Time  `json:"createdAt"`
}

// ChannelEntry is one row of a user's subscribed-channels listing.
type ChannelEntry struct {
	Channel      PublicUser `json:"channel"`
	SubscribedAt time.Time  `json:"createdAt"`
}

// ChannelStats aggregates a channel's dashboard counters. A channel with no
// activity reports zeroes rather than absent fields.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalViews       int64 `json:"totalViews"`
	TotalVideos      int64 `json:"totalVideos"`
}

// TokenPair groups the bearer credentials issued to authenticated users.
type TokenPair struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
