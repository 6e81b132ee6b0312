package handler

import (
	"net/http"

	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	creators    *service.CreatorService
	commitments *service.CommitmentService
}

func NewTokenHandler(creators *service.CreatorService, commitments *service.CommitmentService) *TokenHandler {
	return &TokenHandler{creators: creators, commitments: commitments}
}

// VerifyCreator godoc
// @Summary Check whether a wallet created a token
// @Description The creator is the fee payer of the mint's oldest transaction. A negative answer is still a 200.
// @Tags token
// @Accept json
// @Produce json
// @Param request body model.VerifyCreatorRequest true "Mint and wallet"
// @Success 200 {object} model.VerifyCreatorResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /api/v1/token/verify-creator [post]
func (h *TokenHandler) VerifyCreator(c *gin.Context) {
	var req model.VerifyCreatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	res, err := h.creators.VerifyCreator(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Commitment godoc
// @Summary Get a launch commitment
// @Tags token
// @Produce json
// @Param mint path string true "Mint address"
// @Success 200 {object} model.Commitment
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/commitments/{mint} [get]
func (h *TokenHandler) Commitment(c *gin.Context) {
	res, err := h.commitments.Get(c.Request.Context(), c.Param("mint"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
