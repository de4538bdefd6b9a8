package handler

import (
	"io"
	"net/http"

	"github.com/fuga-catalog/catalog/internal/apiserver/middleware"
	"github.com/fuga-catalog/catalog/internal/common/cnst"
	"github.com/fuga-catalog/catalog/internal/common/errorx"
	"github.com/gin-gonic/gin"
)

// UploadCoverArt handles POST /cover-art (multipart, field "file")
func (h *Handler) UploadCoverArt(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.errors.Respond(c, errorx.New(http.StatusBadRequest, errorx.CodeMissingFile, "No file uploaded"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errors.Respond(c, err)
		return
	}
	defer file.Close()

	// Read one byte past the ceiling so the service can reject oversized
	// files without the handler buffering arbitrarily large uploads.
	data, err := io.ReadAll(io.LimitReader(file, cnst.MaxCoverArtSizeBytes+1))
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	claims := middleware.ClaimsFromContext(c)
	mimeType := fileHeader.Header.Get("Content-Type")

	result, err := h.coverArt.Upload(c.Request.Context(), data, mimeType, claims.UserID)
	if err != nil {
		h.errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
