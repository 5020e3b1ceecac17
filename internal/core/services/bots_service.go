package services

import (
	"context"
	"log/slog"
	"time"

	portsrepo "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

const (
	// pmoProject holds registry documents that belong to the organisation
	// as a whole rather than to any single project.
	pmoProject = "PMO"

	// botsDocument is the registry of chat-bot installations.
	botsDocument = "bots.json"
)

// botsService stores chat-bot installations delivered via OAuth handshakes.
type botsService struct {
	store portsrepo.DocumentStore
}

// NewBotsService creates a new BotsService.
func NewBotsService(store portsrepo.DocumentStore) portssvc.BotsSvcFacade {
	return &botsService{store: store}
}

// Ensure botsService implements the portssvc.BotsSvcFacade interface
var _ portssvc.BotsSvcFacade = (*botsService)(nil)

// Bootstrap ensures the registry document exists; it never resets existing data.
func (s *botsService) Bootstrap(ctx context.Context) error {
	item, err := s.store.Acquire(ctx, pmoProject, botsDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.BotsDocument
	exists, err := item.Load(&doc)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return item.Save(&models.BotsDocument{})
}

// Register stores the installation from an OAuth payload. A bot user id that
// is already registered gets its installation replaced, matching what the
// platform sends on a workspace re-install.
func (s *botsService) Register(ctx context.Context, req dto.RegisterBotRequest) (*models.Bot, error) {
	item, err := s.store.Acquire(ctx, pmoProject, botsDocument)
	if err != nil {
		return nil, err
	}
	defer item.Close()

	var doc models.BotsDocument
	if _, err := item.Load(&doc); err != nil {
		return nil, err
	}

	bot := models.Bot{
		ID:             req.Bot.BotUserID,
		AccessToken:    req.AccessToken,
		TeamName:       req.TeamName,
		TeamID:         req.TeamID,
		BotAccessToken: req.Bot.BotAccessToken,
		CreatedAt:      time.Now().UTC(),
	}

	replaced := false
	for i, b := range doc.Bots {
		if b.ID == bot.ID {
			doc.Bots[i] = bot
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Bots = append(doc.Bots, bot)
	}

	if err := item.Save(&doc); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Bot registered",
		slog.String("bot_id", bot.ID),
		slog.String("team_id", bot.TeamID),
		slog.Bool("replaced", replaced),
	)
	return &bot, nil
}

// Tokens returns all registered bot installations.
func (s *botsService) Tokens(ctx context.Context) ([]models.Bot, error) {
	item, err := s.store.Acquire(ctx, pmoProject, botsDocument)
	if err != nil {
		return nil, err
	}
	defer item.Close()

	var doc models.BotsDocument
	if _, err := item.Load(&doc); err != nil {
		return nil, err
	}

	bots := make([]models.Bot, len(doc.Bots))
	copy(bots, doc.Bots)
	return bots, nil
}
