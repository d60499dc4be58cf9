package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woodora/woodora-backend/internal/blog"
	"github.com/woodora/woodora-backend/pkg/logger"
)

type BlogHandler struct {
	uc     blog.UseCase
	logger logger.ZapLogger
}

func NewBlogHandler(uc blog.UseCase, log logger.ZapLogger) *BlogHandler {
	return &BlogHandler{uc: uc, logger: log}
}

func (h *BlogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/blogs", h.listPosts)
	r.GET("/blogs/:slug", h.getPost)
}

func (h *BlogHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/blogs", h.createPost)
	r.PUT("/blogs/:id", h.updatePost)
	r.DELETE("/blogs/:id", h.deletePost)
}

type blogReq struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	Published     bool   `json:"published"`
}

func (h *BlogHandler) listPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))
	publishedOnly := c.Query("all") != "true"

	posts, count, err := h.uc.ListPosts(c.Request.Context(), publishedOnly, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": count})
}

func (h *BlogHandler) getPost(c *gin.Context) {
	post, err := h.uc.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) createPost(c *gin.Context) {
	var req blogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	post, err := h.uc.CreatePost(c.Request.Context(), &blog.CreateInput{
		Slug:          req.Slug,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		Published:     req.Published,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *BlogHandler) updatePost(c *gin.Context) {
	var req blogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	post, err := h.uc.UpdatePost(c.Request.Context(), &blog.UpdateInput{
		ID:            c.Param("id"),
		Slug:          req.Slug,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		Published:     req.Published,
	})
	if err != nil {
		c.JSON(mapError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *BlogHandler) deletePost(c *gin.Context) {
	if err := h.uc.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func mapError(err error) int {
	switch {
	case errors.Is(err, blog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, blog.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, blog.ErrSlugExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
