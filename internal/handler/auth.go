package handler

import (
    "context"
    "database/sql"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/train-reservation/internal/config"
    "github.com/iliyamo/train-reservation/internal/model"
    "github.com/iliyamo/train-reservation/internal/repository"
    "github.com/iliyamo/train-reservation/internal/utils"
)

// UserStore is the slice of the credential repository the auth handlers
// need.  *repository.UserRepo satisfies it.
type UserStore interface {
    FindByUsername(ctx context.Context, username string) (model.User, error)
    Create(ctx context.Context, username, password string, isAdmin bool, cost int) (uint64, error)
    UpsertAdmin(ctx context.Context, cost int) error
}

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg   config.Config
    Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
    if users == nil {
        panic("nil user store passed to NewAuthHandler")
    }
    return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type credentialsReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type tokenResp struct {
    Token   string `json:"token"`
    IsAdmin bool   `json:"is_admin"`
}

// AdminLogin authenticates the distinguished admin account.  Before the
// credential check it forces the admin record back to its known state
// (self-healing), so the fixed admin password works no matter what was
// stored before.  Storage errors are logged and reported generically;
// their detail never reaches the client.
func (h *AuthHandler) AdminLogin(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.UpsertAdmin(ctx, h.Cfg.BcryptCost); err != nil {
        log.Printf("auth: admin self-heal failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }

    u, err := h.Users.FindByUsername(ctx, req.Username)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
        }
        log.Printf("auth: admin lookup failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    if !u.IsAdmin || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, true, h.Cfg.TokenTTLHrs)
    if err != nil {
        log.Printf("auth: issue token failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    return c.JSON(http.StatusOK, tokenResp{Token: access.Token, IsAdmin: true})
}

// Login authenticates a regular user.  Tokens issued here never carry the
// admin flag, even for the admin account.
func (h *AuthHandler) Login(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.FindByUsername(ctx, req.Username)
    if err != nil {
        if err == sql.ErrNoRows {
            return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
        }
        log.Printf("auth: user lookup failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, false, h.Cfg.TokenTTLHrs)
    if err != nil {
        log.Printf("auth: issue token failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "login failed"})
    }
    return c.JSON(http.StatusOK, tokenResp{Token: access.Token, IsAdmin: false})
}

// Signup registers a regular (non-admin) user.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req credentialsReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "username/password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.Create(ctx, req.Username, req.Password, false, h.Cfg.BcryptCost); err != nil {
        if errors.Is(err, repository.ErrUsernameExists) {
            return c.JSON(http.StatusConflict, echo.Map{"message": "username already exists"})
        }
        log.Printf("auth: signup failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "signup failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"message": "user registered successfully"})
}

// Me echoes the identity extracted by the token middleware.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "username": c.Get("username"),
        "is_admin": c.Get("is_admin"),
    })
}
