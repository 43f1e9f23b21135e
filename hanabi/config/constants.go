package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Pagination
	CharactersPerPage = 7
	DefaultPageSize   = 10

	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// Discord UI Colors
	EmbedDefaultColor = 0x2B2D31

	// Rarity Colors
	RarityCommonColor    = 0x808080
	RarityRareColor      = 0x0000FF
	RarityLegendaryColor = 0xFFD700
)

// Database and Performance Constants
const (
	// Timeouts
	SearchTimeout           = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second

	// Batch processing
	MigrationBatchSize = 500
)

// Economy Constants
const (
	// Shop listing
	ShopTTL            = 1 * time.Hour
	ShopMaxItems       = 10
	ShopBaseMultiplier = 1000
	ShopPriceVariance  = 200
	ShopMinPrice       = 100

	// Cooldowns
	GiftCooldown    = 5 * time.Minute
	RedeemCooldown  = 10 * time.Second
	PayCooldown     = 30 * time.Second
	SpecialCooldown = 24 * time.Hour

	// Special claim
	SpecialClaimReward    = 500
	SpecialClaimMinRarity = 2
)
