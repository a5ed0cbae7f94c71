package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

// conversationHandler handles the generation-thread CRUD routes.
type conversationHandler struct {
	conversationService portssvc.ConversationSvcFacade
}

func newConversationHandler(services *portssvc.ServiceContainer) *conversationHandler {
	return &conversationHandler{conversationService: services.Conversation}
}

// registerConversationRoutes sets up the /api/conversations route group.
// All routes require authentication.
func registerConversationRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newConversationHandler(services)

	conversations := r.Group("/api/conversations", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		conversations.POST("", h.create)
		conversations.GET("", h.list)
		conversations.PATCH("/:id", h.rename)
		conversations.DELETE("/:id", h.delete)
		conversations.GET("/:id/messages", h.listMessages)
	}
}

// create godoc
// @Summary Create a conversation
// @Description Starts a new generation thread. An empty title gets a default.
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body dto.CreateConversationRequest true "Conversation title"
// @Success 201 {object} dto.ConversationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/conversations [post]
func (h *conversationHandler) create(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	conversation, err := h.conversationService.CreateConversation(c.Request.Context(), userID, req.Title)
	if err != nil {
		respondError(c, logger, err, "Failed to create conversation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToConversationResponse(conversation))
}

// list godoc
// @Summary List conversations
// @Description Returns the user's threads, most recently updated first.
// @Tags conversations
// @Produce json
// @Param limit query int false "Maximum entries to return" default(50)
// @Param offset query int false "Entries to skip" default(0)
// @Success 200 {array} dto.ConversationResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/conversations [get]
func (h *conversationHandler) list(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListConversationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	conversations, err := h.conversationService.ListConversations(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list conversations")
		return
	}

	responses := make([]dto.ConversationResponse, len(conversations))
	for i := range conversations {
		responses[i] = dto.ToConversationResponse(&conversations[i])
	}
	c.JSON(http.StatusOK, responses)
}

// rename godoc
// @Summary Rename a conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body dto.UpdateConversationRequest true "New title"
// @Success 200 {object} dto.ConversationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/conversations/{id} [patch]
func (h *conversationHandler) rename(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req dto.UpdateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title is required"})
		return
	}

	conversation, err := h.conversationService.RenameConversation(c.Request.Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		respondError(c, logger, err, "Failed to rename conversation")
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(conversation))
}

// delete godoc
// @Summary Delete a conversation
// @Description Removes an owned thread together with its messages.
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/conversations/{id} [delete]
func (h *conversationHandler) delete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.conversationService.DeleteConversation(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete conversation")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Conversation deleted"})
}

// listMessages godoc
// @Summary List conversation messages
// @Description Returns the thread's generated descriptions, oldest first.
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {array} dto.HistoryItem
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/conversations/{id}/messages [get]
func (h *conversationHandler) listMessages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	messages, err := h.conversationService.ListMessages(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list messages")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryItems(messages))
}
