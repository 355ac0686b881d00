package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/httpresp"
	"github.com/StoreRaterHQ/store-rating-api/internal/infra/repository"
	"github.com/StoreRaterHQ/store-rating-api/internal/middleware"
	ucStore "github.com/StoreRaterHQ/store-rating-api/internal/usecase/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type StoreHandler struct {
	queries  *repository.StoreQueries
	createUC *ucStore.CreateStore
	updateUC *ucStore.UpdateStore
	deleteUC *ucStore.DeleteStore
}

func NewStoreHandler(
	queries *repository.StoreQueries,
	createUC *ucStore.CreateStore,
	updateUC *ucStore.UpdateStore,
	deleteUC *ucStore.DeleteStore,
) *StoreHandler {
	return &StoreHandler{
		queries:  queries,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type StoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address"`
	OwnerID uint   `json:"owner_id" binding:"required"`
}

func (r *StoreRequest) validate(c *gin.Context) bool {
	if !validators.IsValidName(r.Name) {
		httperr.BadRequest(c, "invalid_name", "Name must be between 20 and 60 characters.")
		return false
	}
	if !validators.IsValidAddress(r.Address) {
		httperr.BadRequest(c, "invalid_address", "Address must not exceed 400 characters.")
		return false
	}
	return true
}

// ======================================================
// READS
// ======================================================

func (h *StoreHandler) List(c *gin.Context) {
	viewerID := c.MustGet(middleware.ContextUserID).(uint)

	name := strings.TrimSpace(c.Query("name"))
	address := strings.TrimSpace(c.Query("address"))

	stores, err := h.queries.List(c.Request.Context(), viewerID, name, address)
	if err != nil {
		httperr.Internal(c, "failed_to_list_stores", "Failed to list stores.")
		return
	}

	httpresp.List(c, stores)
}

func (h *StoreHandler) Get(c *gin.Context) {
	viewerID := c.MustGet(middleware.ContextUserID).(uint)

	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_store_id", "Store id must be numeric.")
		return
	}

	summary, err := h.queries.Summary(c.Request.Context(), uint(storeID), viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "store_not_found", "Store not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_store", "Failed to load store.")
		return
	}

	httpresp.OK(c, summary)
}

// ======================================================
// WRITES (admin)
// ======================================================

func (h *StoreHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.validate(c) {
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucStore.CreateStoreInput{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Address: req.Address,
		OwnerID: req.OwnerID,
		ActorID: actorID,
	})
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *StoreHandler) Update(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_store_id", "Store id must be numeric.")
		return
	}

	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !req.validate(c) {
		return
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), uint(storeID), ucStore.UpdateStoreInput{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Address: req.Address,
		OwnerID: req.OwnerID,
		ActorID: actorID,
	})
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *StoreHandler) Delete(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)

	storeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_store_id", "Store id must be numeric.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(storeID), actorID); err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Store deleted"})
}

// ======================================================
// ERROR MAPPING
// ======================================================

func (h *StoreHandler) writeStoreError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "store_not_found"):
		httperr.NotFound(c, "store_not_found", "Store not found.")
	case httperr.IsBusiness(err, "owner_not_found"):
		httperr.NotFound(c, "owner_not_found", "Owner not found.")
	case httperr.IsBusiness(err, "store_email_in_use"):
		httperr.BadRequest(c, "store_email_in_use", "Email already in use by another store.")
	default:
		httperr.Internal(c, "store_operation_failed", "Store operation failed.")
	}
}
