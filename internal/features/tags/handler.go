package tags

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
// @Summary Create a tag
// @Description Multipart create with an optional image. Name and derived slug must be unique.
// @Tags tags
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Tag name"
// @Param image formData file false "Tag image"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /tags [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	tagSlug := slug.Derive(req.Name)
	if tagSlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	tag := &Tag{
		Name: req.Name,
		Slug: tagSlug,
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

		result, err := h.images.UploadImage(c.Request.Context(), file, "tags")
		if err != nil {
			response.InternalServerError(c, "Failed to upload image")
			return
		}
		tag.Image = result.URL
		tag.ImageID = result.PublicID
	}

	if err := h.repo.Create(c.Request.Context(), tag); err != nil {
		if tag.ImageID != "" {
			if derr := h.images.Delete(c.Request.Context(), tag.ImageID); derr != nil {
				log.Printf("failed to delete image %s: %v", tag.ImageID, derr)
			}
		}
		if apperrors.Is(err, apperrors.ErrConflict) {
			response.Conflict(c, "Tag with this name already exists.")
			return
		}
		response.InternalServerError(c, "Failed to create tag")
		return
	}

	response.Created(c, "Tag created successfully.", gin.H{"data": tag})
}

// List godoc
// @Summary List tags
// @Tags tags
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Comma-separated sort fields, prefix with - for descending"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query(), "name")

	list, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list tags")
		return
	}
	if len(list) == 0 {
		response.NotFound(c, "No tags found")
		return
	}

	response.OK(c, "Tag list.", gin.H{
		"pagination": pagination.New(q.Page, int(q.Limit), total),
		"data":       list,
	})
}

// Get godoc
// @Summary Get a tag by slug
// @Tags tags
// @Produce json
// @Param slug path string true "Tag slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /tags/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	tag, err := h.repo.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.InternalServerError(c, "Failed to find tag")
		return
	}
	if tag == nil {
		response.NotFound(c, "Tag not found.")
		return
	}

	response.OK(c, "Tag data.", gin.H{"data": tag})
}

// Update godoc
// @Summary Rename a tag
// @Description The slug re-derives from the new name.
// @Tags tags
// @Accept json
// @Produce json
// @Param id path string true "Tag id"
// @Param request body UpdateTagRequest true "New name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /tags/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	newSlug := slug.Derive(req.Name)
	if newSlug == "" {
		response.BadRequest(c, "Name must contain letters or digits")
		return
	}

	tag, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), bson.M{
		"name": req.Name,
		"slug": newSlug,
	})
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "Tag updated successfully.", gin.H{"data": tag})
}

// Delete godoc
// @Summary Delete a tag
// @Description Removes the tag and its image asset.
// @Tags tags
// @Produce json
// @Param id path string true "Tag id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /tags/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	tag, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	if tag.ImageID != "" {
		if err := h.images.Delete(c.Request.Context(), tag.ImageID); err != nil {
			log.Printf("failed to delete image %s: %v", tag.ImageID, err)
		}
	}

	response.OK(c, "Tag deleted successfully.", gin.H{"data": tag})
}
