package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/hanabi-bot/hanabi/hanabi"
	"github.com/hanabi-bot/hanabi/hanabi/commands"
	"github.com/hanabi-bot/hanabi/hanabi/config"
	"github.com/hanabi-bot/hanabi/hanabi/database"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
	"github.com/hanabi-bot/hanabi/hanabi/economy/redeem"
	"github.com/hanabi-bot/hanabi/hanabi/economy/shop"
	"github.com/hanabi-bot/hanabi/hanabi/economy/transfer"
	"github.com/hanabi-bot/hanabi/hanabi/handlers"
	"github.com/hanabi-bot/hanabi/hanabi/logger"
	"github.com/hanabi-bot/hanabi/hanabi/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Hanabi",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := hanabi.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}

	b := hanabi.New(*cfg, version, commit)
	b.DB = db

	b.AccountRepository = repositories.NewAccountRepository(db.BunDB())
	b.CatalogRepository = repositories.NewCatalogRepository(db.BunDB())
	b.RedeemRepository = repositories.NewRedeemRepository(db.BunDB())

	b.SpacesService = services.NewSpacesService(
		cfg.Spaces.Key,
		cfg.Spaces.Secret,
		cfg.Spaces.Region,
		cfg.Spaces.Bucket,
		cfg.Spaces.ImageRoot,
	)
	b.SearchService = services.NewSearchService(b.CatalogRepository)

	b.Cooldowns = cooldown.NewTracker()
	b.Cooldowns.StartCleanupRoutine(context.Background())

	giftCooldown := config.GiftCooldown
	if cfg.Cooldown.GiftSeconds > 0 {
		giftCooldown = time.Duration(cfg.Cooldown.GiftSeconds) * time.Second
	}
	payCooldown := config.PayCooldown
	if cfg.Cooldown.PaySeconds > 0 {
		payCooldown = time.Duration(cfg.Cooldown.PaySeconds) * time.Second
	}
	redeemCooldown := config.RedeemCooldown
	if cfg.Cooldown.RedeemSeconds > 0 {
		redeemCooldown = time.Duration(cfg.Cooldown.RedeemSeconds) * time.Second
	}

	b.TransferEngine = transfer.NewEngine(b.AccountRepository, b.CatalogRepository, b.Cooldowns, giftCooldown, payCooldown)
	b.ShopEngine = shop.NewEngine(b.AccountRepository, b.CatalogRepository, shopConfig(cfg.Shop))
	b.RedeemEngine = redeem.NewEngine(b.AccountRepository, b.RedeemRepository, b.Cooldowns, redeemCooldown)

	h := handler.New()

	// Economy commands
	h.Command("/balance", handlers.WrapWithLogging("balance", commands.BalanceHandler(b)))
	h.Command("/pay", handlers.WrapWithLogging("pay", commands.PayHandler(b)))
	h.Command("/shop", handlers.WrapWithLogging("shop", commands.ShopHandler(b)))
	h.Command("/buy", handlers.WrapWithLogging("buy", commands.BuyHandler(b)))
	h.Command("/redeem", handlers.WrapWithLogging("redeem", commands.RedeemHandler(b)))
	h.Command("/sclaim", handlers.WrapWithLogging("sclaim", commands.SClaimHandler(b)))

	// Transfer commands
	h.Command("/gift", handlers.WrapWithLogging("gift", commands.GiftHandler(b)))
	h.Component("/gift/", handlers.WrapComponentWithLogging("gift", commands.GiftButtonHandler(b)))
	h.Command("/giftall", handlers.WrapWithLogging("giftall", commands.GiftAllHandler(b)))

	// Collection commands
	h.Command("/harem", handlers.WrapWithLogging("harem", commands.HaremHandler(b)))
	h.Command("/fav", handlers.WrapWithLogging("fav", commands.FavHandler(b)))
	h.Command("/search", handlers.WrapWithLogging("search", commands.SearchHandler(b)))

	// Admin commands
	h.Command("/give", handlers.WrapWithLogging("give", commands.GiveHandler(b)))
	h.Command("/createcode", handlers.WrapWithLogging("createcode", commands.CreateCodeHandler(b)))
	h.Command("/listcodes", handlers.WrapWithLogging("listcodes", commands.ListCodesHandler(b)))
	h.Command("/deletecode", handlers.WrapWithLogging("deletecode", commands.DeleteCodeHandler(b)))
	h.Command("/lock", handlers.WrapWithLogging("lock", commands.LockHandler(b)))
	h.Command("/unlock", handlers.WrapWithLogging("unlock", commands.UnlockHandler(b)))
	h.Command("/upload", handlers.WrapWithLogging("upload", commands.UploadHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		logger.LogError("Failed to setup bot", err)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		logger.LogSystem("Syncing commands", slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			logger.LogError("Failed to sync commands", err)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		logger.LogError("Failed to open gateway", err)
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}

func shopConfig(cfg hanabi.ShopConfig) shop.Config {
	out := shop.Config{
		TTL:            config.ShopTTL,
		MaxItems:       config.ShopMaxItems,
		BaseMultiplier: config.ShopBaseMultiplier,
		Variance:       config.ShopPriceVariance,
		MinPrice:       config.ShopMinPrice,
	}
	if cfg.TTLSeconds > 0 {
		out.TTL = time.Duration(cfg.TTLSeconds) * time.Second
	}
	if cfg.MaxItems > 0 {
		out.MaxItems = cfg.MaxItems
	}
	if cfg.BaseMultiplier > 0 {
		out.BaseMultiplier = cfg.BaseMultiplier
	}
	if cfg.Variance > 0 {
		out.Variance = cfg.Variance
	}
	if cfg.MinPrice > 0 {
		out.MinPrice = cfg.MinPrice
	}
	return out
}
