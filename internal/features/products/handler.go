package products

import (
	"log"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/gocart/internal/features/brands"
	"github.com/xyz-asif/gocart/internal/features/categories"
	"github.com/xyz-asif/gocart/internal/features/tags"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/pagination"
	"github.com/xyz-asif/gocart/internal/pkg/query"
	"github.com/xyz-asif/gocart/internal/pkg/response"
	"github.com/xyz-asif/gocart/internal/pkg/slug"
	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

const maxImagesPerProduct = 5

type Handler struct {
	repo       *Repository
	brands     *brands.Repository
	categories *categories.Repository
	tags       *tags.Repository
	images     *cloudinary.Service
}

func NewHandler(repo *Repository, b *brands.Repository, c *categories.Repository, t *tags.Repository, images *cloudinary.Service) *Handler {
	return &Handler{
		repo:       repo,
		brands:     b,
		categories: c,
		tags:       t,
		images:     images,
	}
}

// Create godoc
// @Summary Create a product
// @Description Multipart create. Brand, category and tag ids must reference existing documents. The slug is derived from the name and must be unique.
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := ValidateCreate(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	refs, ok := h.resolveRefs(c, req.Brand, req.Category, req.Tags)
	if !ok {
		return
	}

	productSlug := slug.Derive(req.Name)
	if productSlug == "" {
		response.BadRequest(c, "Product name must contain letters or digits")
		return
	}
	exists, err := h.repo.SlugExists(c.Request.Context(), productSlug)
	if err != nil {
		response.InternalServerError(c, "Failed to check product")
		return
	}
	if exists {
		response.Conflict(c, "Product with this name already exists.")
		return
	}

	images, ok := h.uploadImages(c)
	if !ok {
		return
	}

	product := &Product{
		Name:  req.Name,
		Title: req.Title,
		Slug:  productSlug,
		Description: Description{
			Short: req.ShortDescription,
			Long:  req.LongDescription,
		},
		Price: Price{
			Regular: req.RegularPrice,
			Sale:    req.SalePrice,
		},
		Quantity: req.Quantity,
		Shipping: Shipping{
			Type: req.ShippingType,
			Fee:  req.ShippingFee,
		},
		Brand:    refs.brand,
		Category: refs.category,
		Tags:     refs.tags,
		Images:   images,
		Status:   req.Status,
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		h.cleanupImages(c, images)
		if apperrors.Is(err, apperrors.ErrConflict) {
			response.Conflict(c, "Product with this name already exists.")
			return
		}
		response.InternalServerError(c, "Failed to create product")
		return
	}

	response.Created(c, "Product created successfully.", gin.H{"data": product})
}

// List godoc
// @Summary List products
// @Description Filter, sort, project and paginate products. Operator suffixes translate to storage operators, e.g. price.regular[gt]=50.
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Comma-separated sort fields, prefix with - for descending"
// @Param search query string false "Case-insensitive name/title search"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /products [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query(), "name", "title")

	list, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list products")
		return
	}
	if len(list) == 0 {
		response.NotFound(c, "No products found")
		return
	}

	response.OK(c, "Products list.", gin.H{
		"pagination": pagination.New(q.Page, int(q.Limit), total),
		"data":       list,
	})
}

// Get godoc
// @Summary Get a product by slug
// @Tags products
// @Produce json
// @Param slug path string true "Product slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /products/{slug} [get]
func (h *Handler) Get(c *gin.Context) {
	product, err := h.repo.FindBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.InternalServerError(c, "Failed to find product")
		return
	}
	if product == nil {
		response.NotFound(c, "Product not found.")
		return
	}

	response.OK(c, "Product data.", gin.H{"data": product})
}

// Update godoc
// @Summary Update a product
// @Description Allow-listed fields only. A name change re-derives the slug.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product id"
// @Param request body UpdateProductRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Failure 409 {object} response.APIError
// @Router /products/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updates := bson.M{}
	if req.Name != nil {
		newSlug := slug.Derive(*req.Name)
		if newSlug == "" {
			response.BadRequest(c, "Product name must contain letters or digits")
			return
		}
		updates["name"] = *req.Name
		updates["slug"] = newSlug
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.ShortDescription != nil {
		updates["description.short"] = *req.ShortDescription
	}
	if req.LongDescription != nil {
		updates["description.long"] = *req.LongDescription
	}
	if req.RegularPrice != nil {
		if *req.RegularPrice <= 0 {
			response.BadRequest(c, "regular price must be positive")
			return
		}
		updates["price.regular"] = *req.RegularPrice
	}
	if req.SalePrice != nil {
		updates["price.sale"] = *req.SalePrice
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			response.BadRequest(c, "quantity cannot be negative")
			return
		}
		updates["quantity"] = *req.Quantity
	}
	if req.ShippingType != nil {
		fee := 0.0
		if req.ShippingFee != nil {
			fee = *req.ShippingFee
		}
		if err := validateShipping(*req.ShippingType, fee); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		updates["shipping.type"] = *req.ShippingType
		updates["shipping.fee"] = fee
	}
	if req.Status != nil {
		if err := validateStatus(*req.Status); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		updates["status"] = *req.Status
	}

	if req.Brand != nil {
		brand, ok := h.resolveBrand(c, *req.Brand)
		if !ok {
			return
		}
		updates["brand"] = brand
	}
	if req.Category != nil {
		category, ok := h.resolveCategory(c, *req.Category)
		if !ok {
			return
		}
		updates["category"] = category
	}
	if req.Tags != nil {
		tagRefs, ok := h.resolveTags(c, *req.Tags)
		if !ok {
			return
		}
		updates["tags"] = tagRefs
	}

	if len(updates) == 0 {
		response.BadRequest(c, "No updatable fields in request")
		return
	}

	product, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "Product updated successfully.", gin.H{"data": product})
}

// Delete godoc
// @Summary Delete a product
// @Description Removes the product and its uploaded images.
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /products/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	product, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	h.cleanupImages(c, product.Images)

	response.OK(c, "Product deleted successfully.", gin.H{"data": product})
}

type resolvedRefs struct {
	brand    primitive.ObjectID
	category primitive.ObjectID
	tags     []primitive.ObjectID
}

// resolveRefs validates and converts the brand/category/tag ids. Each
// resolver writes the error response itself and reports ok=false when the
// id is malformed or points at nothing.
func (h *Handler) resolveRefs(c *gin.Context, brandID, categoryID string, tagIDs []string) (resolvedRefs, bool) {
	var refs resolvedRefs
	var ok bool

	if refs.brand, ok = h.resolveBrand(c, brandID); !ok {
		return refs, false
	}
	if refs.category, ok = h.resolveCategory(c, categoryID); !ok {
		return refs, false
	}
	if refs.tags, ok = h.resolveTags(c, tagIDs); !ok {
		return refs, false
	}

	return refs, true
}

func (h *Handler) resolveBrand(c *gin.Context, id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		response.BadRequest(c, "Invalid brand id format")
		return primitive.NilObjectID, false
	}
	exists, err := h.brands.Exists(c.Request.Context(), oid)
	if err != nil {
		response.InternalServerError(c, "Failed to check brand")
		return primitive.NilObjectID, false
	}
	if !exists {
		response.NotFound(c, "Brand not found.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (h *Handler) resolveCategory(c *gin.Context, id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		response.BadRequest(c, "Invalid category id format")
		return primitive.NilObjectID, false
	}
	exists, err := h.categories.Exists(c.Request.Context(), oid)
	if err != nil {
		response.InternalServerError(c, "Failed to check category")
		return primitive.NilObjectID, false
	}
	if !exists {
		response.NotFound(c, "Category not found.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (h *Handler) resolveTags(c *gin.Context, ids []string) ([]primitive.ObjectID, bool) {
	var tagRefs []primitive.ObjectID
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			response.BadRequest(c, "Invalid tag id format")
			return nil, false
		}
		exists, err := h.tags.Exists(c.Request.Context(), oid)
		if err != nil {
			response.InternalServerError(c, "Failed to check tag")
			return nil, false
		}
		if !exists {
			response.NotFound(c, "Tag not found.")
			return nil, false
		}
		tagRefs = append(tagRefs, oid)
	}
	return tagRefs, true
}

// uploadImages pushes every "images" file to storage. It writes the error
// response itself and reports ok=false when anything fails, deleting what
// it already uploaded.
func (h *Handler) uploadImages(c *gin.Context) ([]Image, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, true
	}

	files := form.File["images"]
	if len(files) > maxImagesPerProduct {
		response.BadRequest(c, "Too many images, maximum is 5")
		return nil, false
	}
	for _, header := range files {
		if err := cloudinary.ValidateImageFile(header); err != nil {
			response.BadRequest(c, err.Error())
			return nil, false
		}
	}

	var uploaded []Image
	for _, header := range files {
		img, err := h.uploadOne(c, header)
		if err != nil {
			h.cleanupImages(c, uploaded)
			response.InternalServerError(c, "Failed to upload image")
			return nil, false
		}
		uploaded = append(uploaded, img)
	}

	return uploaded, true
}

func (h *Handler) uploadOne(c *gin.Context, header *multipart.FileHeader) (Image, error) {
	file, err := header.Open()
	if err != nil {
		return Image{}, err
	}
	defer file.Close()

	result, err := h.images.UploadImage(c.Request.Context(), file, "products")
	if err != nil {
		return Image{}, err
	}
	return Image{URL: result.URL, PublicID: result.PublicID}, nil
}

func (h *Handler) cleanupImages(c *gin.Context, images []Image) {
	for _, img := range images {
		if err := h.images.Delete(c.Request.Context(), img.PublicID); err != nil {
			log.Printf("failed to delete image %s: %v", img.PublicID, err)
		}
	}
}
