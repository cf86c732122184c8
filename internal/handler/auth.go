package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/config"
	"github.com/iliyamo/ticket-storefront/internal/middleware"
	"github.com/iliyamo/ticket-storefront/internal/repository"
	"github.com/iliyamo/ticket-storefront/internal/session"
	"github.com/iliyamo/ticket-storefront/internal/utils"
)

// UserStore is implemented by *repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, name, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// TokenStore is implemented by *repository.TokenRepo.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
	Spaces *session.Registry
	Log    *zap.Logger
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore, spaces *session.Registry, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Spaces: spaces, Log: log.Named("auth")}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
	// CartAdopted is true when the guest cart of X-Session-ID became the
	// user's cart.
	CartAdopted bool `json:"cart_adopted"`
}

// Register creates a customer account and signs it in.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}
	if err := utils.CheckPassword(req.Password); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Name, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		h.Log.Error("create user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	u := repository.User{ID: uid, Email: req.Email, Name: strings.TrimSpace(req.Name), Role: repository.RoleCustomer}
	return h.signIn(ctx, c, u, http.StatusCreated)
}

// Login verifies credentials and returns a new token pair.  A guest
// sending X-Session-ID keeps its cart unless the account already has a
// non-empty one.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	if guest, ok := h.guestWorkspace(c); ok {
		if !guest.Begin(session.OpLogin) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "login in progress"})
		}
		defer guest.End(session.OpLogin)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		h.Log.Error("load user failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return h.signIn(ctx, c, u, http.StatusOK)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return badRequest(c, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		h.Log.Warn("revoke rotated refresh failed", zap.Error(err))
	}
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return h.issue(ctx, c, u, http.StatusOK, false)
}

// Logout revokes one refresh token when given, otherwise every token of
// the authenticated user.  The user's cart is kept for the next login.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	raw := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if raw != "" {
		hash := utils.HashRefreshRaw(raw)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
		}
		return c.NoContent(http.StatusNoContent)
	}
	uid, err := getUserID(c)
	if err != nil {
		return badRequest(c, "provide Authorization header or refresh_token")
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}

func (h *AuthHandler) signIn(ctx context.Context, c echo.Context, u repository.User, status int) error {
	adopted := false
	if sid, ok := guestSessionID(c); ok {
		adopted = h.Spaces.Adopt(middleware.GuestKey(sid), middleware.UserKey(u.ID))
	}
	return h.issue(ctx, c, u, status, adopted)
}

func (h *AuthHandler) issue(ctx context.Context, c echo.Context, u repository.User, status int, adopted bool) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		h.Log.Error("store refresh failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
	}
	return c.JSON(status, authResp{
		User:        userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role},
		Access:      tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh:     tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
		CartAdopted: adopted,
	})
}

func guestSessionID(c echo.Context) (string, bool) {
	u, err := uuid.Parse(c.Request().Header.Get(middleware.HeaderSessionID))
	if err != nil {
		return "", false
	}
	return u.String(), true
}

func (h *AuthHandler) guestWorkspace(c echo.Context) (*session.Workspace, bool) {
	sid, ok := guestSessionID(c)
	if !ok {
		return nil, false
	}
	return h.Spaces.Get(middleware.GuestKey(sid)), true
}
