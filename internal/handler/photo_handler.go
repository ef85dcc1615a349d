package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snapgram/photo-service/internal/application"
	"github.com/snapgram/photo-service/internal/domain"
	"github.com/snapgram/photo-service/internal/pkg/auth"
	"github.com/snapgram/photo-service/internal/pkg/blobstore"
	"github.com/snapgram/photo-service/internal/pkg/middleware"
	"github.com/snapgram/photo-service/internal/pkg/response"
)

// PhotoHandler handles HTTP requests for photo operations.
type PhotoHandler struct {
	service *application.PhotoService
	blobs   blobstore.Store
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService, blobs blobstore.Store) *PhotoHandler {
	return &PhotoHandler{service: service, blobs: blobs}
}

// RegisterRoutes registers all photo routes. Reads are open; mutations
// require an authenticated caller.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	photos := r.Group("/api/v1/photos")

	photos.GET("", h.ListAll)
	photos.GET("/search", h.Search)
	photos.GET("/user/:id", h.ListByOwner)
	photos.GET("/:id", h.GetByID)

	authed := photos.Group("")
	authed.Use(middleware.AuthMiddleware(jwtManager))
	{
		authed.POST("", h.Upload)
		authed.DELETE("/:id", h.Remove)
		authed.PUT("/:id", h.Update)
		authed.PUT("/:id/like", h.Like)
		authed.PUT("/:id/comment", h.Comment)
	}
}

// Upload handles POST /api/v1/photos. It stores the multipart image
// through the blob store and creates the photo with the returned
// handle.
func (h *PhotoHandler) Upload(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "errors": []string{"unauthorized"}})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, domain.NewValidationError("image file is required"))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "could not read uploaded file")
		return
	}
	defer src.Close()

	handle, err := h.blobs.Save(c.Request.Context(), file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.Insert(c.Request.Context(), user, application.InsertPhotoRequest{
		Title: c.PostForm("title"),
		Image: handle,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Remove handles DELETE /api/v1/photos/:id.
func (h *PhotoHandler) Remove(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "errors": []string{"unauthorized"}})
		return
	}

	result, err := h.service.Remove(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAll handles GET /api/v1/photos.
func (h *PhotoHandler) ListAll(c *gin.Context) {
	result, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByOwner handles GET /api/v1/photos/user/:id.
func (h *PhotoHandler) ListByOwner(c *gin.Context) {
	result, err := h.service.ListByOwner(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetByID handles GET /api/v1/photos/:id.
func (h *PhotoHandler) GetByID(c *gin.Context) {
	result, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Update handles PUT /api/v1/photos/:id.
func (h *PhotoHandler) Update(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "errors": []string{"unauthorized"}})
		return
	}

	var req application.UpdatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Like handles PUT /api/v1/photos/:id/like.
func (h *PhotoHandler) Like(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "errors": []string{"unauthorized"}})
		return
	}

	result, err := h.service.Like(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Comment handles PUT /api/v1/photos/:id/comment.
func (h *PhotoHandler) Comment(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "errors": []string{"unauthorized"}})
		return
	}

	var req application.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Comment(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Search handles GET /api/v1/photos/search?q=.
func (h *PhotoHandler) Search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
