package handler

import (
	"io"
	"net/http"

	"github.com/fluxur/backend/internal/model"
	"github.com/fluxur/backend/internal/service"
	"github.com/gin-gonic/gin"
)

const maxImageBytes = 5 << 20

type LaunchHandler struct {
	svc *service.LaunchService
}

func NewLaunchHandler(svc *service.LaunchService) *LaunchHandler {
	return &LaunchHandler{svc: svc}
}

// CreateTx godoc
// @Summary Build a create transaction on a vanity mint
// @Description Reserves a vanity mint, asks PumpPortal for the create transaction and signs it with the mint key.
// @Tags pump
// @Accept json
// @Produce json
// @Param request body model.CreateTxRequest true "Token details"
// @Success 200 {object} model.CreateTxResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/pump/create-tx [post]
func (h *LaunchHandler) CreateTx(c *gin.Context) {
	var req model.CreateTxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	res, err := h.svc.CreateTransaction(c.Request.Context(), GetAuthUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UploadIPFS godoc
// @Summary Upload token metadata to IPFS
// @Tags pump
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Token image"
// @Param name formData string false "Name"
// @Param symbol formData string false "Symbol"
// @Param description formData string false "Description"
// @Param twitter formData string false "Twitter"
// @Param telegram formData string false "Telegram"
// @Param website formData string false "Website"
// @Success 200 {object} model.MetadataUploadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 502 {object} model.ErrorResponse
// @Router /api/v1/pump/ipfs [post]
func (h *LaunchHandler) UploadIPFS(c *gin.Context) {
	upload := model.TokenMetadataUpload{
		Name:        c.PostForm("name"),
		Symbol:      c.PostForm("symbol"),
		Description: c.PostForm("description"),
		Twitter:     c.PostForm("twitter"),
		Telegram:    c.PostForm("telegram"),
		Website:     c.PostForm("website"),
	}

	if header, err := c.FormFile("file"); err == nil {
		if header.Size > maxImageBytes {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Image too large"})
			return
		}
		f, err := header.Open()
		if err != nil {
			writeError(c, err)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
		if err != nil {
			writeError(c, err)
			return
		}
		upload.File = data
		upload.FileName = header.Filename
		upload.ContentType = header.Header.Get("Content-Type")
	}

	res, err := h.svc.UploadMetadata(c.Request.Context(), upload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
