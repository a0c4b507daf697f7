package content

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clinicore/admin-api/internal/model"
	"github.com/clinicore/admin-api/internal/service/content"
	apperrors "github.com/clinicore/admin-api/pkg/errors"
	"github.com/clinicore/admin-api/pkg/httputil"
)

type Handler struct {
	service content.Servicer
}

func NewHandler(service content.Servicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	categories := r.Group("/categories")
	{
		categories.POST("", h.CreateCategory)
		categories.GET("", h.ListCategories)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
		categories.POST("/:id/items", h.CreateCategoryItem)
		categories.GET("/:id/items", h.ListCategoryItems)
	}
	items := r.Group("/category-items")
	{
		items.PUT("/:id", h.UpdateCategoryItem)
		items.DELETE("/:id", h.DeleteCategoryItem)
	}
	banners := r.Group("/banners")
	{
		banners.POST("", h.CreateBanner)
		banners.GET("", h.ListBanners)
		banners.PUT("/:id", h.UpdateBanner)
		banners.DELETE("/:id", h.DeleteBanner)
	}
	videos := r.Group("/videos")
	{
		videos.POST("", h.CreateVideo)
		videos.GET("", h.ListVideos)
		videos.PUT("/:id", h.UpdateVideo)
		videos.DELETE("/:id", h.DeleteVideo)
	}
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, category)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, categories)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid category ID", err))
		return
	}

	var category model.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}
	category.ID = id

	if err := h.service.UpdateCategory(c.Request.Context(), &category); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("category", err))
		return
	}
	httputil.RespondWithSuccess(c, category)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid category ID", err))
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("category", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) CreateCategoryItem(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid category ID", err))
		return
	}

	var req model.CreateCategoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	item, err := h.service.CreateCategoryItem(c.Request.Context(), categoryID, &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, item)
}

func (h *Handler) ListCategoryItems(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid category ID", err))
		return
	}

	items, err := h.service.ListCategoryItems(c.Request.Context(), categoryID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) UpdateCategoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid item ID", err))
		return
	}

	var item model.CategoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}
	item.ID = id

	if err := h.service.UpdateCategoryItem(c.Request.Context(), &item); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("category item", err))
		return
	}
	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) DeleteCategoryItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid item ID", err))
		return
	}

	if err := h.service.DeleteCategoryItem(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("category item", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) CreateBanner(c *gin.Context) {
	var req model.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	banner, err := h.service.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, banner)
}

func (h *Handler) ListBanners(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	banners, err := h.service.ListBanners(c.Request.Context(), activeOnly)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, banners)
}

func (h *Handler) UpdateBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid banner ID", err))
		return
	}

	var banner model.Banner
	if err := c.ShouldBindJSON(&banner); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}
	banner.ID = id

	if err := h.service.UpdateBanner(c.Request.Context(), &banner); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("banner", err))
		return
	}
	httputil.RespondWithSuccess(c, banner)
}

func (h *Handler) DeleteBanner(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid banner ID", err))
		return
	}

	if err := h.service.DeleteBanner(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("banner", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

func (h *Handler) CreateVideo(c *gin.Context) {
	var req model.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	video, err := h.service.CreateVideo(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithCreated(c, video)
}

func (h *Handler) ListVideos(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	videos, err := h.service.ListVideos(c.Request.Context(), activeOnly)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return
	}
	httputil.RespondWithSuccess(c, videos)
}

func (h *Handler) UpdateVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid video ID", err))
		return
	}

	var video model.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}
	video.ID = id

	if err := h.service.UpdateVideo(c.Request.Context(), &video); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("video", err))
		return
	}
	httputil.RespondWithSuccess(c, video)
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid video ID", err))
		return
	}

	if err := h.service.DeleteVideo(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, apperrors.NotFound("video", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
