package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cliptube/backend/internal/auth"
	"github.com/cliptube/backend/internal/logging"
	"github.com/cliptube/backend/internal/models"
	"github.com/cliptube/backend/internal/repositories"
	"github.com/cliptube/backend/internal/storage"
)

const maxUploadMemory = 32 << 20

// UserHandler implements account, session, and channel endpoints.
type UserHandler struct {
	Users   UserStore
	Tokens  TokenManager
	Media   MediaStore
	Cleaner AssetCleaner
	Limiter RateLimiter
	NowFunc func() time.Time
}

// Register handles POST /api/v1/users/register. The body is multipart: text
// fields plus an avatar file and an optional cover image.
func (h UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "auth") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many attempts, slow down")
		return
	}

	if h.Media == nil {
		logger.Error("media store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "media storage unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("invalid register payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	username := strings.TrimSpace(strings.ToLower(r.FormValue("username")))
	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	fullName := strings.TrimSpace(r.FormValue("fullName"))
	password := r.FormValue("password")

	if username == "" || email == "" || fullName == "" || password == "" {
		respondError(ctx, w, http.StatusBadRequest, "username, email, fullName and password are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid email address")
		return
	}
	if len(password) < 8 {
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	id := uuid.NewString()

	avatarURL, err := h.saveUpload(r, "avatar", id+"-avatar")
	if err != nil {
		logger.Warn("register avatar upload failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "avatar file is required")
		return
	}
	coverURL, err := h.saveUpload(r, "coverImage", id+"-cover")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		logger.Warn("register cover upload failed", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "cover image upload failed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	now := h.now()
	user := models.User{
		ID:         id,
		Username:   username,
		Email:      email,
		FullName:   fullName,
		Password:   string(hashed),
		Avatar:     avatarURL,
		CoverImage: coverURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "username or email already in use")
			return
		}
		logger.Error("create user", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	respondData(ctx, w, http.StatusCreated, user, "account created")
}

// Login handles POST /api/v1/users/login. The login field accepts either a
// username or an email address.
func (h UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "auth") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many attempts, slow down")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	login := strings.TrimSpace(strings.ToLower(req.login()))
	if login == "" || req.Password == "" {
		respondError(ctx, w, http.StatusBadRequest, "login and password are required")
		return
	}

	user, err := h.Users.FindByLogin(ctx, login)
	if err != nil {
		logger.Warn("login lookup failed", "login", login, "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Warn("login password mismatch", "userId", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokens, err := h.Tokens.Issue(ctx, user.ID)
	if err != nil {
		logger.Error("issue tokens", "userId", user.ID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondData(ctx, w, http.StatusOK, loginResponse{User: user, Tokens: tokens}, "logged in")
}

// Logout handles POST /api/v1/users/logout. It clears the stored refresh
// token so outstanding refresh credentials stop working.
func (h UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	if err := h.Tokens.Revoke(ctx, userID); err != nil {
		logging.FromContext(ctx).Error("revoke tokens", "userId", userID, "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to log out")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "logged out")
}

// RefreshToken handles POST /api/v1/users/refresh-token.
func (h UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid refresh payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	token := strings.TrimSpace(req.RefreshToken)
	if token == "" {
		respondError(ctx, w, http.StatusBadRequest, "refresh token is required")
		return
	}

	tokens, err := h.Tokens.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrTokenRevoked) {
			respondError(ctx, w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		logger.Error("refresh tokens", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "unable to refresh session")
		return
	}

	respondData(ctx, w, http.StatusOK, tokens, "session refreshed")
}

// CurrentUser handles GET /api/v1/users/current-user.
func (h UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondData(ctx, w, http.StatusOK, user, "current user")
}

// ChangePassword handles POST /api/v1/users/change-password.
func (h UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid change password payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(ctx, w, http.StatusBadRequest, "old and new passwords are required")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "old password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	if err := h.Users.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "password changed")
}

// UpdateAccount handles PATCH /api/v1/users/update-account.
func (h UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid update account payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if fullName == "" || email == "" {
		respondError(ctx, w, http.StatusBadRequest, "fullName and email are required")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid email address")
		return
	}

	user, err := h.Users.UpdateAccount(ctx, userID, fullName, email)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "email already in use")
			return
		}
		respondStoreError(ctx, w, err, "user")
		return
	}

	respondData(ctx, w, http.StatusOK, user, "account updated")
}

// UpdateAvatar handles PATCH /api/v1/users/avatar.
func (h UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar")
}

// UpdateCoverImage handles PATCH /api/v1/users/cover-image.
func (h UserHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage")
}

func (h UserHandler) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)
	userID := auth.UserIDFromContext(ctx)

	if h.Media == nil {
		logger.Error("media store unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "media storage unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		logger.Warn("invalid upload payload", "field", field, "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	url, err := h.saveUpload(r, field, userID+"-"+field+"-"+uuid.NewString())
	if err != nil {
		logger.Warn("image upload failed", "field", field, "error", err)
		respondError(ctx, w, http.StatusBadRequest, field+" file is required")
		return
	}

	previous, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	var user models.User
	var old string
	switch field {
	case "avatar":
		old = previous.Avatar
		user, err = h.Users.UpdateAvatar(ctx, userID, url)
	default:
		old = previous.CoverImage
		user, err = h.Users.UpdateCoverImage(ctx, userID, url)
	}
	if err != nil {
		respondStoreError(ctx, w, err, "user")
		return
	}

	h.cleanup(ctx, old)

	respondData(ctx, w, http.StatusOK, user, field+" updated")
}

// ChannelProfile handles GET /api/v1/users/c/{username}. The viewer may be
// anonymous; isSubscribed is false in that case.
func (h UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, ok := pathID(r, "username")
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, "username is required")
		return
	}

	profile, err := h.Users.ChannelProfile(ctx, strings.ToLower(username), auth.UserIDFromContext(ctx))
	if err != nil {
		respondStoreError(ctx, w, err, "channel")
		return
	}

	respondData(ctx, w, http.StatusOK, profile, "channel profile")
}

// WatchHistory handles GET /api/v1/users/history.
func (h UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := auth.UserIDFromContext(ctx)

	history, err := h.Users.WatchHistory(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "watch history")
		return
	}
	if history == nil {
		history = []models.VideoWithOwner{}
	}

	respondData(ctx, w, http.StatusOK, history, "watch history")
}

func (h UserHandler) saveUpload(r *http.Request, field, id string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	return h.Media.Save(r.Context(), storage.KeyFor(id, header.Filename), file)
}

func (h UserHandler) cleanup(ctx context.Context, location string) {
	if h.Cleaner == nil || location == "" {
		return
	}
	if err := h.Cleaner.Enqueue(ctx, location); err != nil {
		logging.FromContext(ctx).Warn("enqueue asset cleanup", "location", location, "error", err)
	}
}

func (h UserHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) login() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type loginResponse struct {
	User   models.User      `json:"user"`
	Tokens models.TokenPair `json:"tokens"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
