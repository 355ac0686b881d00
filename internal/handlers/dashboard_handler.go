package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/dto"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/httpresp"
	"github.com/StoreRaterHQ/store-rating-api/internal/middleware"
)

// DashboardQueries is the slice of the read side the dashboards need.
type DashboardQueries interface {
	AdminDashboard(ctx context.Context) (*dto.AdminDashboard, error)
	OwnerDashboard(ctx context.Context, ownerID uint) (*dto.OwnerDashboard, error)
}

type DashboardHandler struct {
	queries DashboardQueries
}

func NewDashboardHandler(queries DashboardQueries) *DashboardHandler {
	return &DashboardHandler{queries: queries}
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	dashboard, err := h.queries.AdminDashboard(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	httpresp.OK(c, dashboard)
}

func (h *DashboardHandler) Owner(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	dashboard, err := h.queries.OwnerDashboard(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "no_store_for_owner", "No store found for this owner.")
			return
		}
		httperr.Internal(c, "failed_to_load_dashboard", "Failed to load dashboard.")
		return
	}

	httpresp.OK(c, dashboard)
}
