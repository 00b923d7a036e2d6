package categories

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/pagination"
	"github.com/xyz-asif/gocart/internal/pkg/query"
	"github.com/xyz-asif/gocart/internal/pkg/response"
	"github.com/xyz-asif/gocart/internal/pkg/slug"
	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

type Handler struct {
	repo   *Repository
	images *cloudinary.Service
}

func NewHandler(repo *Repository, images *cloudinary.Service) *Handler {
	return &Handler{repo: repo, images: images}
}

// Create godoc
// @Summary Create a category
// @Description Multipart create with an optional image. Name and derived slug must be unique.
// @Tags categories
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Category name"
// @Param image formData file false "Category image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	categorySlug := slug.Derive(req.Name)
	if categorySlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	category := &Category{
		Name: req.Name,
		Slug: categorySlug,
	}

	if header, err := c.FormFile("image"); err == nil {
		if err := cloudinary.ValidateImageFile(header); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		file, err := header.Open()
		if err != nil {
			response.InternalServerError(c, "Failed to read image")
			return
		}
		defer file.Close()

		result, err := h.images.UploadImage(c.Request.Context(), file, "categories")
		if err != nil {
			response.InternalServerError(c, "Failed to upload image")
			return
		}
		category.Image = result.URL
		category.ImageID = result.PublicID
	}

	if err := h.repo.Create(c.Request.Context(), category); err != nil {
		if category.ImageID != "" {
			if derr := h.images.Delete(c.Request.Context(), category.ImageID); derr != nil {
				log.Printf("failed to delete image %s: %v", category.ImageID, derr)
			}
		}
		if apperrors.Is(err, apperrors.ErrConflict) {
			response.Conflict(c, "Category with this name already exists.")
			return
		}
		response.InternalServerError(c, "Failed to create category")
		return
	}

	response.Created(c, "Category created successfully.", gin.H{"data": category})
}

// List godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Comma-separated sort fields, prefix with - for descending"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /categories [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query(), "name")

	list, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list categories")
		return
	}
	if len(list) == 0 {
		response.NotFound(c, "No categories found")
		return
	}

	response.OK(c, "Category list.", gin.H{
		"pagination": pagination.New(q.Page, int(q.Limit), total),
		"data":       list,
	})
}

// Get godoc
// @Summary Get a category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /categories/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	category, err := h.repo.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.InternalServerError(c, "Failed to find category")
		return
	}
	if category == nil {
		response.NotFound(c, "Category not found.")
		return
	}

	response.OK(c, "Category data.", gin.H{"data": category})
}

// Update godoc
// @Summary Rename a category
// @Description The slug re-derives from the new name.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param request body UpdateCategoryRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	newSlug := slug.Derive(req.Name)
	if newSlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	category, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), bson.M{
		"name": req.Name,
		"slug": newSlug,
	})
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "Category updated successfully.", gin.H{"data": category})
}

// Delete godoc
// @Summary Delete a category
// @Description Removes the category and its image asset.
// @Tags categories
// @Produce json
// @Param id path string true "Category id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	category, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	if category.ImageID != "" {
		if err := h.images.Delete(c.Request.Context(), category.ImageID); err != nil {
			log.Printf("failed to delete image %s: %v", category.ImageID, err)
		}
	}

	response.OK(c, "Category deleted successfully.", gin.H{"data": category})
}
