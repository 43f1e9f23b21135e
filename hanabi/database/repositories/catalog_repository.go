package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	lru "github.com/hashicorp/golang-lru"
	"github.com/uptrace/bun"
)

const catalogCacheSize = 2048

type CatalogRepository interface {
	Get(ctx context.Context, characterID int64) (*models.CatalogEntry, error)
	GetAll(ctx context.Context) ([]*models.CatalogEntry, error)
	Upsert(ctx context.Context, entry *models.CatalogEntry) error
	Delete(ctx context.Context, characterID int64) error
	IsLocked(ctx context.Context, characterID int64) (bool, error)
	SetLocked(ctx context.Context, characterID int64, locked bool, lockedBy string, reason string) error
	SampleRandom(ctx context.Context, n int, minRarity int) ([]*models.CatalogEntry, error)
}

type catalogRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewCatalogRepository(db *bun.DB) CatalogRepository {
	cache, _ := lru.New(catalogCacheSize)
	return &catalogRepository{db: db, cache: cache}
}

// Get serves read-mostly entry lookups through an LRU cache. Lock decisions
// must not use the cached Locked field; they go through IsLocked, which always
// reads current state.
func (r *catalogRepository) Get(ctx context.Context, characterID int64) (*models.CatalogEntry, error) {
	if cached, ok := r.cache.Get(characterID); ok {
		return cached.(*models.CatalogEntry), nil
	}

	entry := new(models.CatalogEntry)
	err := r.db.NewSelect().
		Model(entry).
		Where("ce.id = ?", characterID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, economy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog entry: %w", err)
	}

	r.cache.Add(characterID, entry)
	return entry, nil
}

func (r *catalogRepository) GetAll(ctx context.Context) ([]*models.CatalogEntry, error) {
	var entries []*models.CatalogEntry
	err := r.db.NewSelect().
		Model(&entries).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return entries, nil
}

func (r *catalogRepository) Upsert(ctx context.Context, entry *models.CatalogEntry) error {
	entry.UpdatedAt = time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = entry.UpdatedAt
	}

	_, err := r.db.NewInsert().
		Model(entry).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("anime = EXCLUDED.anime").
		Set("rarity = EXCLUDED.rarity").
		Set("image_url = EXCLUDED.image_url").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog entry: %w", err)
	}

	r.cache.Remove(entry.ID)
	return nil
}

func (r *catalogRepository) Delete(ctx context.Context, characterID int64) error {
	res, err := r.db.NewDelete().
		Model((*models.CatalogEntry)(nil)).
		Where("id = ?", characterID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete catalog entry: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return economy.ErrNotFound
	}

	r.cache.Remove(characterID)
	return nil
}

// IsLocked reads the live row, never the cache: lock state can change between
// a proposal and its confirmation and must be current at the moment of grant.
func (r *catalogRepository) IsLocked(ctx context.Context, characterID int64) (bool, error) {
	var locked bool
	err := r.db.NewSelect().
		Model((*models.CatalogEntry)(nil)).
		Column("locked").
		Where("id = ?", characterID).
		Scan(ctx, &locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, economy.ErrNotFound
		}
		return false, fmt.Errorf("failed to check lock: %w", err)
	}
	return locked, nil
}

func (r *catalogRepository) SetLocked(ctx context.Context, characterID int64, locked bool, lockedBy string, reason string) error {
	if !locked {
		lockedBy, reason = "", ""
	}

	res, err := r.db.NewUpdate().
		Model((*models.CatalogEntry)(nil)).
		Set("locked = ?", locked).
		Set("locked_by = ?", lockedBy).
		Set("lock_reason = ?", reason).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", characterID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set lock: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return economy.ErrNotFound
	}

	r.cache.Remove(characterID)
	return nil
}

// SampleRandom returns up to n distinct unlocked entries, uniformly sampled.
// minRarity 0 means any rarity.
func (r *catalogRepository) SampleRandom(ctx context.Context, n int, minRarity int) ([]*models.CatalogEntry, error) {
	var entries []*models.CatalogEntry
	q := r.db.NewSelect().
		Model(&entries).
		Where("locked = false").
		OrderExpr("random()").
		Limit(n)
	if minRarity > 0 {
		q = q.Where("rarity >= ?", minRarity)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to sample catalog: %w", err)
	}
	return entries, nil
}
