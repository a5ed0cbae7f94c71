package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

// adminHandler handles the administrative routes.
type adminHandler struct {
	userService        portssvc.UserSvcFacade
	descriptionService portssvc.DescriptionSvcFacade
	reportingService   portssvc.ReportingSvcFacade
}

func newAdminHandler(services *portssvc.ServiceContainer) *adminHandler {
	return &adminHandler{
		userService:        services.User,
		descriptionService: services.Description,
		reportingService:   services.Reporting,
	}
}

// registerAdminRoutes sets up the /api/admin route group. Every route
// requires an authenticated admin.
func registerAdminRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAdminHandler(services)

	admin := r.Group("/api/admin",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.AdminMiddleware(services.User),
	)
	{
		admin.GET("/users", h.listUsers)
		admin.DELETE("/users/:id", h.deleteUser)
		admin.PUT("/users/:id/role", h.updateUserRole)
		admin.GET("/descriptions", h.listDescriptions)
		admin.GET("/stats", h.stats)
		admin.GET("/stats/timeseries", h.timeSeries)
	}
}

// listUsers godoc
// @Summary List users
// @Description Returns a page of registered users, newest first.
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum entries to return" default(20)
// @Param offset query int false "Entries to skip" default(0)
// @Success 200 {object} dto.ListUsersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/users [get]
func (h *adminHandler) listUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// deleteUser godoc
// @Summary Delete a user
// @Description Removes a user account and all of their history.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/users/{id} [delete]
func (h *adminHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.userService.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete user")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}

// updateUserRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/users/{id}/role [put]
func (h *adminHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), c.Param("id"), domain.UserRole(req.Role))
	if err != nil {
		respondError(c, logger, err, "Failed to update role")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listDescriptions godoc
// @Summary List descriptions across all users
// @Tags admin
// @Produce json
// @Param limit query int false "Maximum entries to return" default(50)
// @Param offset query int false "Entries to skip" default(0)
// @Success 200 {array} dto.HistoryItem
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/descriptions [get]
func (h *adminHandler) listDescriptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListDescriptionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	descriptions, err := h.descriptionService.ListDescriptions(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list descriptions")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryItems(descriptions))
}

// stats godoc
// @Summary Usage statistics
// @Description Returns total users and descriptions, broken down by source.
// @Tags admin
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/stats [get]
func (h *adminHandler) stats(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stats, err := h.reportingService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// timeSeries godoc
// @Summary Daily generation counts
// @Description Returns one point per day over the requested window, zero-filled.
// @Tags admin
// @Produce json
// @Param days query int false "Window size in days" default(30)
// @Success 200 {array} dto.TimeSeriesPoint
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/admin/stats/timeseries [get]
func (h *adminHandler) timeSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.TimeSeriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	buckets, err := h.reportingService.TimeSeries(c.Request.Context(), params.Days)
	if err != nil {
		respondError(c, logger, err, "Failed to compute time series")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeSeries(buckets))
}
