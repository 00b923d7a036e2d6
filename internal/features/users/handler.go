package users

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/xyz-asif/gocart/internal/features/auth"
	"github.com/xyz-asif/gocart/internal/pkg/cloudinary"
	"github.com/xyz-asif/gocart/internal/pkg/pagination"
	"github.com/xyz-asif/gocart/internal/pkg/query"
	"github.com/xyz-asif/gocart/internal/pkg/response"
	"github.com/xyz-asif/gocart/internal/pkg/validator"
	apperrors "github.com/xyz-asif/gocart/pkg/errors"
)

// Handler serves the admin user management endpoints. It reuses the auth
// repository, the users collection has a single owner.
type Handler struct {
	repo   *auth.Repository
	images *cloudinary.Service
}

func NewHandler(repo *auth.Repository, images *cloudinary.Service) *Handler {
	return &Handler{repo: repo, images: images}
}

// List godoc
// @Summary List users
// @Description Filter, sort, project and paginate users. Operators like role=admin or name[eq]=x translate to the storage query.
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Comma-separated sort fields, prefix with - for descending"
// @Param fields query string false "Comma-separated projection fields"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.APIError
// @Router /users [get]
func (h *Handler) List(c *gin.Context) {
	q := query.Parse(c.Request.URL.Query(), "name", "email")

	users, total, err := h.repo.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list users")
		return
	}
	if len(users) == 0 {
		response.NotFound(c, "No users found")
		return
	}

	response.OK(c, "Users list.", gin.H{
		"pagination": pagination.New(q.Page, int(q.Limit), total),
		"data":       users,
	})
}

// Get godoc
// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /users/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	user, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}
	if user == nil {
		response.NotFound(c, "User not found.")
		return
	}

	response.OK(c, "User data.", gin.H{"data": user})
}

// Update godoc
// @Summary Update a user's profile fields
// @Description Only name, address, phone, gender and photo are updatable. Role and ban state have their own endpoints.
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /users/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	updates := bson.M{}
	if req.Name != nil {
		if !validator.IsValidName(*req.Name) {
			response.BadRequest(c, "Invalid name")
			return
		}
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		if !validator.IsValidPhone(*req.Phone) {
			response.BadRequest(c, "Invalid phone number")
			return
		}
		updates["phone"] = *req.Phone
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Photo != nil {
		updates["photo"] = *req.Photo
	}
	if len(updates) == 0 {
		response.BadRequest(c, "No updatable fields in request")
		return
	}

	user, err := h.repo.UpdateFields(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "User updated successfully.", gin.H{"data": user})
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the account and its uploaded photo asset.
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /users/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	user, err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	// The account row is gone either way, an orphaned asset only costs
	// storage.
	if user.PhotoID != "" {
		if err := h.images.Delete(c.Request.Context(), user.PhotoID); err != nil {
			log.Printf("failed to delete photo %s for user %s: %v", user.PhotoID, user.Email, err)
		}
	}

	response.OK(c, "User deleted successfully.", gin.H{"data": user})
}

// Ban godoc
// @Summary Ban a user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /users/{id}/ban [patch]
func (h *Handler) Ban(c *gin.Context) {
	h.setBanned(c, true, "User banned successfully.")
}

// Unban godoc
// @Summary Unban a user
// @Tags users
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 404 {object} response.APIError
// @Router /users/{id}/unban [patch]
func (h *Handler) Unban(c *gin.Context) {
	h.setBanned(c, false, "User unbanned successfully.")
}

func (h *Handler) setBanned(c *gin.Context, banned bool, message string) {
	user, err := h.repo.SetBanned(c.Request.Context(), c.Param("id"), banned)
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, message, gin.H{"data": user})
}

// UpdatePassword godoc
// @Summary Change the logged-in user's password
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Old and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Failure 401 {object} response.APIError
// @Router /users/password [patch]
func (h *Handler) UpdatePassword(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		response.Unauthorized(c, "Wrong password. Please try again.")
		return
	}

	if !validator.IsStrongPassword(req.NewPassword) {
		response.BadRequest(c, "Password must be at least 7 characters with uppercase, lowercase and a number")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		response.InternalServerError(c, "Failed to process password")
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), user.Email, string(hashed)); err != nil {
		response.Error(c, apperrors.Status(err), "Failed to update password")
		return
	}

	response.OK(c, "Password updated successfully.", nil)
}

// UploadPhoto godoc
// @Summary Upload the logged-in user's profile photo
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Profile photo"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.APIError
// @Router /users/photo [patch]
func (h *Handler) UploadPhoto(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "Photo file is required")
		return
	}
	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, err := header.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read photo")
		return
	}
	defer file.Close()

	result, err := h.images.UploadImage(c.Request.Context(), file, "users")
	if err != nil {
		response.InternalServerError(c, "Failed to upload photo")
		return
	}

	// Replace before persist so a failed update doesn't leak the old asset.
	if user.PhotoID != "" {
		if err := h.images.Delete(c.Request.Context(), user.PhotoID); err != nil {
			log.Printf("failed to delete old photo %s: %v", user.PhotoID, err)
		}
	}

	updated, err := h.repo.UpdateFields(c.Request.Context(), user.ID.Hex(), bson.M{
		"photo":   result.URL,
		"photoId": result.PublicID,
	})
	if err != nil {
		response.Error(c, apperrors.Status(err), err.Error())
		return
	}

	response.OK(c, "Photo uploaded successfully.", gin.H{"data": updated})
}
