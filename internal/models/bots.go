package models

import "time"

// Bot is one registered chat-platform bot installation, keyed by the bot
// user id assigned by the platform during the OAuth handshake.
type Bot struct {
	ID             string    `json:"id"`
	AccessToken    string    `json:"accessToken"`
	TeamName       string    `json:"teamName"`
	TeamID         string    `json:"teamID"`
	BotAccessToken string    `json:"botAccessToken"`
	CreatedAt      time.Time `json:"created"`
}

// BotsDocument is the persisted registry of bot installations. It lives in
// the management (PMO) project rather than per project.
type BotsDocument struct {
	Bots []Bot `json:"bots,omitempty"`
}
