package brands

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
// @Summary Create a brand
// @Description Multipart create with an optional image. Name and derived slug must be unique.
// @Tags brands
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Brand name"
// @Param image formData file false "Brand image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /brands [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateBrandRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	brandSlug := slug.Derive(req.Name)
	if brandSlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	brand := &Brand{
		Name: req.Name,
		Slug: brandSlug,
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

		result, err := h.images.UploadImage(c.Request.Context(), file, "brands")
		if err != nil {
			response.InternalServerError(c, "Failed to upload image")
			return
		}
		brand.Image = result.URL
		brand.ImageID = result.PublicID
	}

	if err := h.repo.Create(c.Request.Context(), brand); err != nil {
		if brand.ImageID != "" {
			if derr := h.images.Delete(c.Request.Context(), brand.ImageID); derr != nil {
				log.Printf("failed to delete image %s: %v", brand.ImageID, derr)
			}
		}
		if apperrors.Is(err, apperrors.ErrConflict) {
			response.Conflict(c, "Brand with this name already exists.")
			return
		}
		response.InternalServerError(c, "Failed to create brand")
		return
	}

	response.Created(c, "Brand created successfully.", gin.H{"data": brand})
}

// List godoc
// @Summary List brands
// @Tags brands
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Comma-separated sort fields, prefix with - for descending"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /brands [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query(), "name")

	list, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list brands")
		return
	}
	if len(list) == 0 {
		response.NotFound(c, "No brands found")
		return
	}

	response.OK(c, "Brand list.", gin.H{
		"pagination": pagination.New(q.Page, int(q.Limit), total),
		"data":       list,
	})
}

// Get godoc
// @Summary Get a brand by slug
// @Tags brands
// @Produce json
// @Param slug path string true "Brand slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /brands/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	brand, err := h.repo.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.InternalServerError(c, "Failed to find brand")
		return
	}
	if brand == nil {
		response.NotFound(c, "Brand not found.")
		return
	}

	response.OK(c, "Brand data.", gin.H{"data": brand})
}

// Update godoc
// @Summary Rename a brand
// @Description The slug re-derives from the new name.
// @Tags brands
// @Accept json
// @Produce json
// @Param id path string true "Brand id"
// @Param request body UpdateBrandRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /brands/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	newSlug := slug.Derive(req.Name)
	if newSlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	brand, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), bson.M{
		"name": req.Name,
		"slug": newSlug,
	})
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "Brand updated successfully.", gin.H{"data": brand})
}

// Delete godoc
// @Summary Delete a brand
// @Description Removes the brand and its image asset.
// @Tags brands
// @Produce json
// @Param id path string true "Brand id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /brands/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	brand, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	if brand.ImageID != "" {
		if err := h.images.Delete(c.Request.Context(), brand.ImageID); err != nil {
			log.Printf("failed to delete image %s: %v", brand.ImageID, err)
		}
	}

	response.OK(c, "Brand deleted successfully.", gin.H{"data": brand})
}
