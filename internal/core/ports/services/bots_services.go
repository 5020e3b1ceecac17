package services

import (
	"context"

	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// BotsSvcFacade defines the operations on the chat-bot registry.
type BotsSvcFacade interface {
	// Bootstrap ensures the bot registry document exists; idempotent.
	Bootstrap(ctx context.Context) error

	// Register stores a bot installation from an OAuth handshake payload.
	// Re-registering the same bot user id replaces the stored installation.
	Register(ctx context.Context, req dto.RegisterBotRequest) (*models.Bot, error)

	// Tokens returns all registered bot installations.
	Tokens(ctx context.Context) ([]models.Bot, error)
}
