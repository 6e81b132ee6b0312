package handler

import (
	"net/http"

	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type VanityHandler struct {
	svc *service.VanityService
}

func NewVanityHandler(svc *service.VanityService) *VanityHandler {
	return &VanityHandler{svc: svc}
}

// Reserve godoc
// @Summary Reserve a vanity mint
// @Description Hands the caller one pre-generated mint keypair. Release or confirm it afterwards.
// @Tags vanity
// @Produce json
// @Success 200 {object} model.VanityReservation
// @Failure 401 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/vanity/reserve [post]
func (h *VanityHandler) Reserve(c *gin.Context) {
	res, err := h.svc.Reserve(c.Request.Context(), GetAuthUser(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, res)
}

// Release godoc
// @Summary Release a reserved vanity mint
// @Tags vanity
// @Accept json
// @Produce json
// @Param request body model.VanityReleaseRequest true "Reserved mint"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/vanity/release [post]
func (h *VanityHandler) Release(c *gin.Context) {
	var req model.VanityReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "publicId required"})
		return
	}
	if err := h.svc.Release(c.Request.Context(), GetAuthUser(c), req.PublicID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}

// Confirm godoc
// @Summary Mark a reserved vanity mint used
// @Description Called after the create transaction landed on chain.
// @Tags vanity
// @Accept json
// @Produce json
// @Param request body model.VanityReleaseRequest true "Reserved mint"
// @Success 200 {object} model.SuccessResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/vanity/confirm [post]
func (h *VanityHandler) Confirm(c *gin.Context) {
	var req model.VanityReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "publicId required"})
		return
	}
	if err := h.svc.Confirm(c.Request.Context(), GetAuthUser(c), req.PublicID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.SuccessResponse{Success: true})
}

// Import godoc
// @Summary Import vanity mints
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.VanityImportRequest true "Mint keypairs"
// @Success 200 {object} model.VanityImportResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/admin/vanity-mints [post]
func (h *VanityHandler) Import(c *gin.Context) {
	var req model.VanityImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}
	res, err := h.svc.Import(c.Request.Context(), req.Mints)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Stats godoc
// @Summary Vanity pool counts per status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.VanityMintStats
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/admin/vanity-mints/stats [get]
func (h *VanityHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
