package handlers

import "net/http"

// Middleware decorates a handler, typically with authentication.
type Middleware func(http.Handler) http.Handler

// RegisterRoutes wires HTTP handlers into the provided ServeMux. requireAuth
// gates endpoints that need an authenticated caller; optionalAuth attaches
// the viewer's identity when present without demanding one.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies, requireAuth, optionalAuth Middleware) {
	if requireAuth == nil {
		requireAuth = func(next http.Handler) http.Handler { return next }
	}
	if optionalAuth == nil {
		optionalAuth = func(next http.Handler) http.Handler { return next }
	}

	health := HealthHandler{}
	users := UserHandler{Users: deps.Users, Tokens: deps.Tokens, Media: deps.Media, Cleaner: deps.Cleaner, Limiter: deps.AuthLimiter}
	videos := VideoHandler{Videos: deps.Videos, Users: deps.Users, Media: deps.Media, Cleaner: deps.Cleaner}
	comments := CommentHandler{Comments: deps.Comments, Videos: deps.Videos}
	tweets := TweetHandler{Tweets: deps.Tweets, Users: deps.Users}
	likes := LikeHandler{Likes: deps.Likes, Videos: deps.Videos, Comments: deps.Comments, Tweets: deps.Tweets}
	playlists := PlaylistHandler{Playlists: deps.Playlists, Videos: deps.Videos, Users: deps.Users}
	subscriptions := SubscriptionHandler{Subscriptions: deps.Subscriptions, Users: deps.Users}
	dashboard := DashboardHandler{Stats: deps.Stats, Videos: deps.Videos}

	public := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, optionalAuth(handler))
	}
	protected := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, requireAuth(handler))
	}

	mux.HandleFunc("GET /healthz", health.Handle)
	mux.HandleFunc("GET /api/v1/healthcheck", health.Handle)

	public("POST /api/v1/users/register", users.Register)
	public("POST /api/v1/users/login", users.Login)
	public("POST /api/v1/users/refresh-token", users.RefreshToken)
	protected("POST /api/v1/users/logout", users.Logout)
	protected("GET /api/v1/users/current-user", users.CurrentUser)
	protected("POST /api/v1/users/change-password", users.ChangePassword)
	protected("PATCH /api/v1/users/update-account", users.UpdateAccount)
	protected("PATCH /api/v1/users/avatar", users.UpdateAvatar)
	protected("PATCH /api/v1/users/cover-image", users.UpdateCoverImage)
	public("GET /api/v1/users/c/{username}", users.ChannelProfile)
	protected("GET /api/v1/users/history", users.WatchHistory)

	public("GET /api/v1/videos", videos.List)
	protected("POST /api/v1/videos", videos.Publish)
	public("GET /api/v1/videos/{videoId}", videos.Get)
	protected("PATCH /api/v1/videos/{videoId}", videos.Update)
	protected("DELETE /api/v1/videos/{videoId}", videos.Delete)
	protected("PATCH /api/v1/videos/toggle/publish/{videoId}", videos.TogglePublish)

	public("GET /api/v1/comments/{videoId}", comments.ListByVideo)
	protected("POST /api/v1/comments/{videoId}", comments.Create)
	protected("PATCH /api/v1/comments/c/{commentId}", comments.Update)
	protected("DELETE /api/v1/comments/c/{commentId}", comments.Delete)

	protected("POST /api/v1/likes/toggle/v/{videoId}", likes.ToggleVideo)
	protected("POST /api/v1/likes/toggle/c/{commentId}", likes.ToggleComment)
	protected("POST /api/v1/likes/toggle/t/{tweetId}", likes.ToggleTweet)
	protected("GET /api/v1/likes/videos", likes.LikedVideos)

	protected("POST /api/v1/playlists", playlists.Create)
	public("GET /api/v1/playlists/{playlistId}", playlists.Get)
	public("GET /api/v1/playlists/user/{userId}", playlists.ListByUser)
	protected("PATCH /api/v1/playlists/{playlistId}", playlists.Update)
	protected("DELETE /api/v1/playlists/{playlistId}", playlists.Delete)
	protected("PATCH /api/v1/playlists/add/{videoId}/{playlistId}", playlists.AddVideo)
	protected("PATCH /api/v1/playlists/remove/{videoId}/{playlistId}", playlists.RemoveVideo)

	protected("POST /api/v1/subscriptions/c/{channelId}", subscriptions.Toggle)
	public("GET /api/v1/subscriptions/u/{channelId}", subscriptions.ListSubscribers)
	public("GET /api/v1/subscriptions/c/{subscriberId}", subscriptions.ListChannels)

	protected("POST /api/v1/tweets", tweets.Create)
	public("GET /api/v1/tweets/user/{userId}", tweets.ListByUser)
	protected("PATCH /api/v1/tweets/{tweetId}", tweets.Update)
	protected("DELETE /api/v1/tweets/{tweetId}", tweets.Delete)

	protected("GET /api/v1/dashboard/stats", dashboard.ChannelStats)
	protected("GET /api/v1/dashboard/videos", dashboard.ChannelVideos)
}
