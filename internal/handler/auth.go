package handler

import (
	"net/http"

	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Nonce godoc
// @Summary Issue a login challenge
// @Description Stores a fresh nonce for the wallet. The wallet signs the challenge message built from it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.NonceRequest true "Wallet address"
// @Success 200 {object} model.NonceResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/nonce [post]
func (h *AuthHandler) Nonce(c *gin.Context) {
	var req model.NonceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "walletAddress required"})
		return
	}

	res, err := h.svc.IssueChallenge(c.Request.Context(), req.WalletAddress)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Verify godoc
// @Summary Verify a signed challenge
// @Description Consumes the nonce and sets the session cookie (fluxur_session).
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.VerifyRequest true "Signed challenge"
// @Success 200 {object} model.VerifyResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req model.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Missing fields"})
		return
	}

	token, _, err := h.svc.VerifyChallenge(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, model.VerifyResponse{OK: true})
}

// Me godoc
// @Summary Get current session
// @Description Always 200. user is null without a valid session.
// @Tags auth
// @Produce json
// @Success 200 {object} model.SessionResponse
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, model.SessionResponse{User: GetAuthUser(c)})
}

// Logout godoc
// @Summary Logout
// @Description Revokes the session (if present) and clears the cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} model.AuthLogoutResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), c.GetString(sessionTokenKey), GetAuthUser(c)); err != nil {
		_ = c.Error(err)
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, model.AuthLogoutResponse{Status: "logged_out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, token, cfg.MaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}
