package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/middleware"
	ucRating "github.com/StoreRaterHQ/store-rating-api/internal/usecase/rating"
)

// ======================================================
// HANDLER
// ======================================================

type RatingHandler struct {
	submitUC *ucRating.SubmitRating
	deleteUC *ucRating.DeleteRating
}

func NewRatingHandler(
	submitUC *ucRating.SubmitRating,
	deleteUC *ucRating.DeleteRating,
) *RatingHandler {
	return &RatingHandler{
		submitUC: submitUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SubmitRatingRequest struct {
	StoreID uint `json:"store_id" binding:"required"`
	Rating  int  `json:"rating" binding:"required"`
}

// ======================================================
// SUBMIT (create or update, one row per user/store)
// ======================================================

func (h *RatingHandler) Submit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.submitUC.Execute(c.Request.Context(), ucRating.SubmitRatingInput{
		UserID:  userID,
		StoreID: req.StoreID,
		Value:   req.Rating,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "store_not_found"):
			httperr.NotFound(c, "store_not_found", "Store not found.")
		case httperr.IsBusiness(err, "invalid_rating_value"):
			httperr.BadRequest(c, "invalid_rating_value", "Rating must be an integer between 1 and 5.")
		default:
			httperr.Internal(c, "failed_to_submit_rating", "Failed to submit rating.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"rating":         result.Rating,
		"average_rating": result.AverageRating,
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *RatingHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	storeID, err := strconv.ParseUint(c.Param("store_id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_store_id", "Store id must be numeric.")
		return
	}

	average, err := h.deleteUC.Execute(c.Request.Context(), userID, uint(storeID))
	if err != nil {
		if httperr.IsBusiness(err, "rating_not_found") {
			httperr.NotFound(c, "rating_not_found", "Rating not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_rating", "Failed to delete rating.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Rating deleted",
		"average_rating": average,
	})
}
