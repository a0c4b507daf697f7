package media

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicore/admin-api/internal/storage"
	apperrors "github.com/clinicore/admin-api/pkg/errors"
	"github.com/clinicore/admin-api/pkg/httputil"
)

// maxUploadBytes caps a single media upload at 10 MiB.
const maxUploadBytes = 10 << 20

// allowedPrefixes are the media collections uploads may target.
var allowedPrefixes = map[string]bool{
	"avatars":    true,
	"banners":    true,
	"categories": true,
	"docs":       true,
}

type Handler struct {
	uploader storage.Uploader
}

func NewHandler(uploader storage.Uploader) *Handler {
	return &Handler{uploader: uploader}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/media/:prefix", h.Upload)
}

// Upload accepts a multipart file and stores it under the named collection.
func (h *Handler) Upload(c *gin.Context) {
	prefix := c.Param("prefix")
	if !allowedPrefixes[prefix] {
		httputil.RespondWithError(c, apperrors.BadRequest("unknown media collection", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("file is required", err))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		httputil.RespondWithError(c, apperrors.BadRequest("file too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(
		c.Request.Context(),
		prefix,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}

	httputil.RespondWithCreated(c, gin.H{"url": url})
}
