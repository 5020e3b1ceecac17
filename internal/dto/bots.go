package dto

import "github.com/pbk-app/project_bookkeeping_app/internal/models"

// BotInfo is the bot section of a chat-platform OAuth payload.
type BotInfo struct {
	BotUserID      string `json:"botUserID" binding:"required"`
	BotAccessToken string `json:"botAccessToken" binding:"required"`
}

// RegisterBotRequest mirrors the OAuth handshake payload delivered by the
// chat platform when a workspace installs the bot.
type RegisterBotRequest struct {
	AccessToken string  `json:"accessToken" binding:"required"`
	TeamName    string  `json:"teamName" binding:"required"`
	TeamID      string  `json:"teamID" binding:"required"`
	Bot         BotInfo `json:"bot" binding:"required"`
}

// BotTokenResponse is one registered bot's id and access token.
type BotTokenResponse struct {
	ID             string `json:"id"`
	BotAccessToken string `json:"botAccessToken"`
}

// ToBotTokenResponses converts registered bots to their token listing form.
func ToBotTokenResponses(bots []models.Bot) []BotTokenResponse {
	responses := make([]BotTokenResponse, len(bots))
	for i, bot := range bots {
		responses[i] = BotTokenResponse{ID: bot.ID, BotAccessToken: bot.BotAccessToken}
	}
	return responses
}
