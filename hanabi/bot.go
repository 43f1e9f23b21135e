package hanabi

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/hanabi-bot/hanabi/hanabi/database"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
	"github.com/hanabi-bot/hanabi/hanabi/economy/redeem"
	"github.com/hanabi-bot/hanabi/hanabi/economy/shop"
	"github.com/hanabi-bot/hanabi/hanabi/economy/transfer"
	"github.com/hanabi-bot/hanabi/hanabi/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB                *database.DB
	AccountRepository repositories.AccountRepository
	CatalogRepository repositories.CatalogRepository
	RedeemRepository  repositories.RedeemRepository

	Cooldowns      *cooldown.Tracker
	TransferEngine *transfer.Engine
	ShopEngine     *shop.Engine
	RedeemEngine   *redeem.Engine

	SpacesService *services.SpacesService
	SearchService *services.SearchService
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// IsAdmin reports whether the user is in the configured admin allowlist.
func (b *Bot) IsAdmin(id snowflake.ID) bool {
	for _, adminID := range b.Cfg.Bot.AdminIDs {
		if adminID == id {
			return true
		}
	}
	return false
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Hanabi is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the character shop"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
