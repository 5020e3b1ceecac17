package services_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/core/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/dto"
	"github.com/pbk-app/project_bookkeeping_app/internal/repositories/docstore"
)

func newBotsService(t *testing.T) portssvc.BotsSvcFacade {
	t.Helper()
	store := docstore.NewStore(afero.NewMemMapFs(), "data")
	svc := services.NewBotsService(store)
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc
}

func registration(botUserID string) dto.RegisterBotRequest {
	return dto.RegisterBotRequest{
		AccessToken: gofakeit.UUID(),
		TeamName:    gofakeit.Company(),
		TeamID:      gofakeit.UUID(),
		Bot: dto.BotInfo{
			BotUserID:      botUserID,
			BotAccessToken: gofakeit.UUID(),
		},
	}
}

func TestBotsRegisterAndTokens(t *testing.T) {
	svc := newBotsService(t)
	ctx := context.Background()

	first := registration("B001")
	bot, err := svc.Register(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "B001", bot.ID)
	assert.Equal(t, first.Bot.BotAccessToken, bot.BotAccessToken)
	assert.False(t, bot.CreatedAt.IsZero())

	_, err = svc.Register(ctx, registration("B002"))
	require.NoError(t, err)

	bots, err := svc.Tokens(ctx)
	require.NoError(t, err)
	require.Len(t, bots, 2)
	assert.Equal(t, "B001", bots[0].ID)
	assert.Equal(t, "B002", bots[1].ID)
}

func TestBotsReinstallReplaces(t *testing.T) {
	svc := newBotsService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registration("B001"))
	require.NoError(t, err)

	second := registration("B001")
	_, err = svc.Register(ctx, second)
	require.NoError(t, err)

	bots, err := svc.Tokens(ctx)
	require.NoError(t, err)
	require.Len(t, bots, 1, "re-registering the same bot user id must replace, not append")
	assert.Equal(t, second.Bot.BotAccessToken, bots[0].BotAccessToken)
	assert.Equal(t, second.TeamID, bots[0].TeamID)
}
