package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/httpresp"
	"github.com/StoreRaterHQ/store-rating-api/internal/infra/repository"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
	"github.com/StoreRaterHQ/store-rating-api/internal/validators"
)

// ======================================================
// HANDLER (admin user management)
// ======================================================

type UserHandler struct {
	db      *gorm.DB
	queries *repository.StoreQueries
}

func NewUserHandler(db *gorm.DB, queries *repository.StoreQueries) *UserHandler {
	return &UserHandler{db: db, queries: queries}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required"`
}

// --------- Handlers ---------

func (h *UserHandler) List(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	email := strings.TrimSpace(c.Query("email"))
	role := strings.TrimSpace(c.Query("role"))
	address := strings.TrimSpace(c.Query("address"))

	q := h.db.Model(&models.User{})

	if name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}
	if email != "" {
		q = q.Where("email ILIKE ?", "%"+email+"%")
	}
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if address != "" {
		q = q.Where("address ILIKE ?", "%"+address+"%")
	}

	var users []models.User
	if err := q.Order("name ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Failed to list users.")
		return
	}

	httpresp.List(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var user models.User
	if err := h.db.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Failed to load user.")
		return
	}

	// Store owners carry their stores' aggregates in the detail view.
	if user.Role == string(store.RoleStoreOwner) {
		stores, err := h.queries.StoresOwnedBy(c.Request.Context(), user.ID)
		if err != nil {
			httperr.Internal(c, "failed_to_get_user", "Failed to load owned stores.")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":   user,
			"stores": stores,
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validators.IsValidName(req.Name) {
		httperr.BadRequest(c, "invalid_name", "Name must be between 20 and 60 characters.")
		return
	}

	if !validators.IsValidAddress(req.Address) {
		httperr.BadRequest(c, "invalid_address", "Address must not exceed 400 characters.")
		return
	}

	if !validators.IsValidPassword(req.Password) {
		httperr.BadRequest(c, "invalid_password", "Password must be 8-16 characters with at least one uppercase letter and one special character.")
		return
	}

	// store_owner is derived from store assignment, never set directly.
	if !store.Assignable(store.Role(req.Role)) {
		httperr.BadRequest(c, "invalid_role", "Role must be system_admin or normal_user.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "user_already_exists", "A user with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Failed to process password.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		Address:      req.Address,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if httperr.IsDuplicateKey(err) {
			httperr.BadRequest(c, "user_already_exists", "A user with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Failed to create user.")
		return
	}

	c.JSON(http.StatusCreated, user)
}
