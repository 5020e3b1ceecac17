package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
)

// botsHandler handles HTTP requests related to the chat-bot registry.
type botsHandler struct {
	botsService portssvc.BotsSvcFacade
}

// newBotsHandler creates a new botsHandler.
func newBotsHandler(bs portssvc.BotsSvcFacade) *botsHandler {
	return &botsHandler{botsService: bs}
}

// registerBotsRoutes registers routes related to the chat-bot registry.
func registerBotsRoutes(rg *gin.RouterGroup, botsService portssvc.BotsSvcFacade) {
	h := newBotsHandler(botsService)

	bots := rg.Group("/bots")
	{
		bots.POST("", h.registerBot)
		bots.GET("/tokens", h.listTokens)
	}
}

// registerBot godoc
// @Summary Register a bot installation
// @Description Stores the OAuth handshake payload delivered when a workspace installs the bot
// @Tags bots
// @Accept  json
// @Produce  json
// @Param   bot body dto.RegisterBotRequest true "OAuth payload"
// @Success 201 {object} dto.BotTokenResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to register bot"
// @Router /bots [post]
func (h *botsHandler) registerBot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerBot", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bot, err := h.botsService.Register(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to register bot", slog.String("bot_id", req.Bot.BotUserID), slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.BotTokenResponse{ID: bot.ID, BotAccessToken: bot.BotAccessToken})
}

// listTokens godoc
// @Summary List registered bot tokens
// @Tags bots
// @Produce  json
// @Success 200 {array} dto.BotTokenResponse
// @Failure 500 {object} map[string]string "Failed to list bot tokens"
// @Router /bots/tokens [get]
func (h *botsHandler) listTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	bots, err := h.botsService.Tokens(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list bot tokens", slog.String("error", err.Error()))
		respondLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBotTokenResponses(bots))
}
