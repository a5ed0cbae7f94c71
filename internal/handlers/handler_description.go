package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/dto"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
)

const maxImageBytes = 10 << 20

// descriptionHandler handles generation, history, styles, TTS and SEO scoring.
type descriptionHandler struct {
	descriptionService portssvc.DescriptionSvcFacade
	speech             portssvc.SpeechSynthesizer
}

func newDescriptionHandler(services *portssvc.ServiceContainer) *descriptionHandler {
	return &descriptionHandler{
		descriptionService: services.Description,
		speech:             services.Speech,
	}
}

// registerDescriptionRoutes sets up the /api description routes. Generation
// and TTS accept anonymous callers; history requires authentication.
func registerDescriptionRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newDescriptionHandler(services)

	api := r.Group("/api")
	{
		api.GET("/styles", h.listStyles)
		api.POST("/seo-score", h.scoreSEO)

		optional := api.Group("", middleware.OptionalAuthMiddleware(cfg.JWTSecret))
		{
			optional.POST("/descriptions/text", h.generateFromText)
			optional.POST("/descriptions/image", h.generateFromImage)
			optional.POST("/tts", h.textToSpeech)
		}

		authed := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/history", h.listHistory)
			authed.DELETE("/history/:id", h.deleteHistoryItem)
			authed.DELETE("/history", h.clearHistory)
		}
	}
}

// generateFromText godoc
// @Summary Generate a description from product text
// @Description Produces an AI-written product description. Authenticated results are saved to history; anonymous results are returned without persisting.
// @Tags descriptions
// @Accept json
// @Produce json
// @Param request body dto.GenerateTextRequest true "Product info, style and optional conversation"
// @Success 200 {object} dto.DescriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Conversation not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/descriptions/text [post]
func (h *descriptionHandler) generateFromText(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	desc, err := h.descriptionService.GenerateFromText(c.Request.Context(), optionalUserID(c), req)
	if err != nil {
		respondError(c, logger, err, "Failed to generate description")
		return
	}

	c.JSON(http.StatusOK, dto.ToDescriptionResponse(desc))
}

// generateFromImage godoc
// @Summary Generate a description from a product image
// @Description Produces an AI-written description of an uploaded product photo. Authenticated uploads are stored and the result saved to history.
// @Tags descriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Product image"
// @Param style formData string false "Writing style"
// @Param prompt formData string false "Extra instructions"
// @Param conversation_id formData string false "Conversation to attach the result to"
// @Success 200 {object} dto.DescriptionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/descriptions/image [post]
func (h *descriptionHandler) generateFromImage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image file is required"})
		return
	}
	if fileHeader.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Image file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not read image file"})
		return
	}

	in := portssvc.GenerateImageInput{
		ImageData:   data,
		ImageFormat: imageFormatFor(fileHeader.Header.Get("Content-Type")),
		Style:       c.PostForm("style"),
		Prompt:      c.PostForm("prompt"),
	}
	if convID := c.PostForm("conversation_id"); convID != "" {
		in.ConversationID = &convID
	}

	desc, err := h.descriptionService.GenerateFromImage(c.Request.Context(), optionalUserID(c), in)
	if err != nil {
		respondError(c, logger, err, "Failed to generate description from image")
		return
	}

	c.JSON(http.StatusOK, dto.ToDescriptionResponse(desc))
}

// imageFormatFor maps a multipart content type to the generator's image
// format token.
func imageFormatFor(contentType string) string {
	if format, ok := strings.CutPrefix(contentType, "image/"); ok && format != "" {
		return format
	}
	return "jpeg"
}

// listHistory godoc
// @Summary List description history
// @Description Returns the authenticated user's saved descriptions, newest first.
// @Tags descriptions
// @Produce json
// @Param limit query int false "Maximum entries to return" default(20)
// @Success 200 {array} dto.HistoryItem
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/history [get]
func (h *descriptionHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	items, err := h.descriptionService.ListHistory(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryItems(items))
}

// deleteHistoryItem godoc
// @Summary Delete one history entry
// @Tags descriptions
// @Produce json
// @Param id path string true "History entry ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/history/{id} [delete]
func (h *descriptionHandler) deleteHistoryItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	if err := h.descriptionService.DeleteHistoryItem(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, logger, err, "Failed to delete history item")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "History item deleted"})
}

// clearHistory godoc
// @Summary Delete all history entries
// @Tags descriptions
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/history [delete]
func (h *descriptionHandler) clearHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	count, err := h.descriptionService.ClearHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to clear history")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Deleted %d history items", count)})
}

// listStyles godoc
// @Summary List supported writing styles
// @Tags descriptions
// @Produce json
// @Success 200 {array} string
// @Router /api/styles [get]
func (h *descriptionHandler) listStyles(c *gin.Context) {
	c.JSON(http.StatusOK, h.descriptionService.Styles())
}

// textToSpeech godoc
// @Summary Convert text to speech
// @Description Synthesizes the given text and returns the audio stream.
// @Tags descriptions
// @Accept json
// @Produce audio/mpeg
// @Param request body dto.TTSRequest true "Text to speak"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/tts [post]
func (h *descriptionHandler) textToSpeech(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TTSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Text is required"})
		return
	}

	audio, contentType, err := h.speech.Synthesize(c.Request.Context(), req.Text, "")
	if err != nil {
		respondError(c, logger, err, "Failed to synthesize speech")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="speech.mp3"`)
	c.Data(http.StatusOK, contentType, audio)
}

// scoreSEO godoc
// @Summary Score description text for SEO
// @Description Evaluates length, keyword usage, hashtags, call-to-action and emoji.
// @Tags descriptions
// @Accept json
// @Produce json
// @Param request body dto.SEOScoreRequest true "Text to score"
// @Success 200 {object} dto.SEOScoreResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/seo-score [post]
func (h *descriptionHandler) scoreSEO(c *gin.Context) {
	var req dto.SEOScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Text is required"})
		return
	}

	c.JSON(http.StatusOK, h.descriptionService.ScoreSEO(req))
}
