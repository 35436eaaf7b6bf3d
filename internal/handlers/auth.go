package handlers

import (
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
)

// AuthHandler handles login, registration and account management for the
// maintenance shop. Registration is open but always produces a viewer
// account; elevated roles are granted by an admin.
type AuthHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var loginReq models.LoginRequest
	if err := decodeBody(r, &loginReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if loginReq.Username == "" || loginReq.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.userCollection.FindUserByUsername(r.Context(), loginReq.Username)
	if err != nil {
		// Same response as a bad password: don't leak which usernames exist.
		log.WithField("username", loginReq.Username).Warn("login attempt for unknown account")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := h.authService.VerifyLogin(user, loginReq.Password); err != nil {
		if errors.Is(err, auth.ErrUserInactive) {
			http.Error(w, "Account is deactivated", http.StatusUnauthorized)
			return
		}
		log.WithField("username", loginReq.Username).Warn("login attempt with bad password")
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := h.userCollection.UpdateLastLogin(r.Context(), user.ID.Hex()); err != nil {
		// Never fail a login over bookkeeping.
		log.WithError(err).Warn("failed to update last login")
	}

	h.respondWithTokens(w, http.StatusOK, user)
}

// Register handles POST /api/auth/register. The requested role is only
// honored when the request carries a valid admin token; everyone else
// gets a viewer account regardless of what they ask for.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var registerReq models.RegisterRequest
	if err := decodeBody(r, &registerReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.authService.ValidateUsername(registerReq.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidateEmail(registerReq.Email); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidatePassword(registerReq.Password); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role, err := h.grantableRole(r, registerReq.Role)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if _, err := h.userCollection.FindUserByUsername(r.Context(), registerReq.Username); err == nil {
		http.Error(w, "Username already exists", http.StatusConflict)
		return
	}
	if _, err := h.userCollection.FindUserByEmail(r.Context(), registerReq.Email); err == nil {
		http.Error(w, "Email already exists", http.StatusConflict)
		return
	}

	passwordHash, err := h.authService.HashPassword(registerReq.Password)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     registerReq.Username,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
		Role:         role,
		FirstName:    registerReq.FirstName,
		LastName:     registerReq.LastName,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := h.userCollection.InsertUser(r.Context(), user); err != nil {
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	log.WithFields(log.Fields{"username": user.Username, "role": user.Role}).Info("account registered")
	h.respondWithTokens(w, http.StatusCreated, &user)
}

// grantableRole resolves the role a registration may receive. Empty and
// viewer requests always pass; anything higher needs an admin token on
// the request, since /api/auth/register itself is unauthenticated.
func (h *AuthHandler) grantableRole(r *http.Request, requested models.Role) (models.Role, error) {
	if requested == "" || requested == models.RoleViewer {
		return models.RoleViewer, nil
	}
	if !models.IsValidRole(requested) {
		return "", errors.New("invalid role")
	}

	token, err := h.authService.ExtractTokenFromHeader(r.Header.Get("Authorization"))
	if err != nil {
		return "", errors.New("admin token required to assign roles")
	}
	claims, err := h.authService.ValidateToken(token)
	if err != nil || claims.Role != models.RoleAdmin {
		return "", errors.New("admin token required to assign roles")
	}
	return requested, nil
}

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.authService.GenerateToken(user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	refreshToken, err := h.authService.GenerateRefreshToken()
	if err != nil {
		http.Error(w, "Failed to generate refresh token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, status, models.LoginResponse{
		Token:        token,
		RefreshToken: refreshToken,
		User:         *user,
	})
}

// currentUser resolves the authenticated account's claims, writing the
// 401 itself when the auth middleware left no claims on the request.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		http.Error(w, "User context not found", http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}

// GetProfile handles GET /api/auth/profile for the logged-in account.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ChangePassword handles POST /api/auth/password for the logged-in
// account. The current password is always re-checked so a stolen token
// alone cannot rotate credentials.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var passwordReq struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decodeBody(r, &passwordReq); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if passwordReq.CurrentPassword == "" || passwordReq.NewPassword == "" {
		http.Error(w, "Current password and new password are required", http.StatusBadRequest)
		return
	}
	if err := h.authService.ValidatePassword(passwordReq.NewPassword); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.userCollection.FindUserByID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if !h.authService.CheckPassword(passwordReq.CurrentPassword, user.PasswordHash) {
		http.Error(w, "Current password is incorrect", http.StatusUnauthorized)
		return
	}

	newHash, err := h.authService.HashPassword(passwordReq.NewPassword)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	user.PasswordHash = newHash
	if err := h.userCollection.UpdateUser(r.Context(), claims.UserID, *user); err != nil {
		http.Error(w, "Failed to update password", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// Users handles GET /api/auth/users. Access is gated on manage_users by
// the middleware, so only admins reach this.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	users, err := h.userCollection.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
