package migration

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/logger"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Migrator copies the legacy bot's MongoDB data into Postgres: the character
// catalog first, then accounts with their denormalized collections.
type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int

	stats MigrationStats

	// Mongo collection names (overrideable)
	collNames map[string]string
}

func NewMigrator(pgDB *bun.DB, mongoDB *mongo.Database, batchSize int) *Migrator {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Migrator{
		pgDB:      pgDB,
		mongoDB:   mongoDB,
		batchSize: batchSize,
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
		collNames: map[string]string{
			"characters": "characters",
			"users":      "users",
		},
	}
}

// SetCollectionName overrides a legacy collection name.
func (m *Migrator) SetCollectionName(key, name string) {
	m.collNames[key] = name
}

func (m *Migrator) MigrateAll(ctx context.Context) error {
	if err := m.MigrateCatalog(ctx); err != nil {
		return fmt.Errorf("catalog migration: %w", err)
	}
	if err := m.MigrateAccounts(ctx); err != nil {
		return fmt.Errorf("account migration: %w", err)
	}

	for table, stats := range m.stats.Tables {
		logger.LogSystem("Migration table summary",
			slog.String("table", table),
			slog.Int("read", stats.Read),
			slog.Int("imported", stats.Imported),
			slog.Int("skipped", stats.Skipped))
	}
	logger.LogSystem("Migration finished",
		slog.Duration("took", time.Since(m.stats.StartTime)))
	return nil
}

// MigrateCatalog imports legacy characters as catalog entries.
func (m *Migrator) MigrateCatalog(ctx context.Context) error {
	stats := &TableStats{}
	m.stats.Tables["catalog_entries"] = stats

	cursor, err := m.mongoDB.Collection(m.collNames["characters"]).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query characters: %w", err)
	}
	defer cursor.Close(ctx)

	var batch []*models.CatalogEntry
	seen := make(map[int64]bool)

	for cursor.Next(ctx) {
		var mc MongoCharacter
		if err := cursor.Decode(&mc); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		id := toInt64(mc.ID)
		if id == 0 || seen[id] {
			stats.Skipped++
			continue
		}
		seen[id] = true

		batch = append(batch, m.convertCharacter(mc, id))
		if len(batch) >= m.batchSize {
			if err := m.flushCatalog(ctx, batch, stats); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := m.flushCatalog(ctx, batch, stats); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// MigrateAccounts imports legacy users with their balances, owned characters
// and favorites.
func (m *Migrator) MigrateAccounts(ctx context.Context) error {
	accStats := &TableStats{}
	instStats := &TableStats{}
	m.stats.Tables["accounts"] = accStats
	m.stats.Tables["character_instances"] = instStats

	cursor, err := m.mongoDB.Collection(m.collNames["users"]).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var mu MongoUser
		if err := cursor.Decode(&mu); err != nil {
			accStats.Skipped++
			continue
		}
		accStats.Read++

		userID := toInt64(mu.ID)
		if userID == 0 {
			accStats.Skipped++
			continue
		}
		discordID := strconv.FormatInt(userID, 10)

		account := &models.Account{
			DiscordID: discordID,
			Username:  firstNonEmpty(mu.Username, mu.FirstName),
			Balance:   toInt64(mu.Balance),
			Favorites: toInt64Slice(mu.Favorites),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		_, err := m.pgDB.NewInsert().
			Model(account).
			On("CONFLICT (discord_id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to import account %s: %w", discordID, err)
		}
		accStats.Imported++

		instances := make([]*models.CharacterInstance, 0, len(mu.Characters))
		for _, mc := range mu.Characters {
			charID := toInt64(mc.ID)
			if charID == 0 {
				instStats.Skipped++
				continue
			}
			instances = append(instances, &models.CharacterInstance{
				AccountID:   discordID,
				CharacterID: charID,
				Name:        mc.Name,
				Anime:       mc.Anime,
				Rarity:      int(toInt64(mc.Rarity)),
				ImageURL:    mc.ImageURL,
				ObtainedVia: models.ObtainedGift,
				ObtainedAt:  time.Now(),
			})
		}
		instStats.Read += len(instances)

		for i := 0; i < len(instances); i += m.batchSize {
			end := min(i+m.batchSize, len(instances))
			chunk := instances[i:end]
			if _, err := m.pgDB.NewInsert().Model(&chunk).Exec(ctx); err != nil {
				return fmt.Errorf("failed to import characters for %s: %w", discordID, err)
			}
			instStats.Imported += end - i
		}
	}
	return cursor.Err()
}

func (m *Migrator) convertCharacter(mc MongoCharacter, id int64) *models.CatalogEntry {
	rarity := int(toInt64(mc.Rarity))
	if rarity < models.RarityCommon {
		rarity = models.RarityCommon
	}
	if rarity > models.MaxRarity {
		rarity = models.MaxRarity
	}
	return &models.CatalogEntry{
		ID:        id,
		Name:      mc.Name,
		Anime:     mc.Anime,
		Rarity:    rarity,
		ImageURL:  mc.ImageURL,
		Locked:    mc.Locked,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func (m *Migrator) flushCatalog(ctx context.Context, batch []*models.CatalogEntry, stats *TableStats) error {
	_, err := m.pgDB.NewInsert().
		Model(&batch).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to import catalog batch: %w", err)
	}
	stats.Imported += len(batch)
	logger.LogSystem("Catalog batch imported",
		slog.Int("imported_total", stats.Imported))
	return nil
}

// toInt64 normalizes the loosely typed legacy ID/number fields.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func toInt64Slice(vs []interface{}) []int64 {
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		if n := toInt64(v); n != 0 {
			out = append(out, n)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
