package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/uptrace/bun"
)

type AccountRepository interface {
	GetOrCreate(ctx context.Context, discordID string, username string) (*models.Account, error)
	GetByDiscordID(ctx context.Context, discordID string) (*models.Account, error)
	AdjustBalance(ctx context.Context, discordID string, delta int64, requireNonNegative bool) error
	AddCharacter(ctx context.Context, instance *models.CharacterInstance) error
	AddCharacters(ctx context.Context, accountID string, instances []*models.CharacterInstance) error
	RemoveCharacter(ctx context.Context, accountID string, characterID int64) (*models.CharacterInstance, error)
	ClearCharacters(ctx context.Context, accountID string) (int64, error)
	GetCharacters(ctx context.Context, accountID string) ([]*models.CharacterInstance, error)
	CountCharacter(ctx context.Context, accountID string, characterID int64) (int, error)
	SetFavorite(ctx context.Context, discordID string, characterID int64, favorite bool) error
}

type accountRepository struct {
	db *bun.DB
}

func NewAccountRepository(db *bun.DB) AccountRepository {
	return &accountRepository{db: db}
}

// GetOrCreate returns the account for discordID, inserting a default record
// (zero balance, empty collection) on first interaction. The insert is
// ON CONFLICT DO NOTHING so concurrent first interactions converge on one row.
func (r *accountRepository) GetOrCreate(ctx context.Context, discordID string, username string) (*models.Account, error) {
	account := &models.Account{
		DiscordID: discordID,
		Username:  username,
		Favorites: []int64{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(account).
		On("CONFLICT (discord_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure account: %w", err)
	}

	return r.GetByDiscordID(ctx, discordID)
}

func (r *accountRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.Account, error) {
	account := new(models.Account)
	err := r.db.NewSelect().
		Model(account).
		Where("discord_id = ?", discordID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, economy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// AdjustBalance applies delta as a single conditional UPDATE. With
// requireNonNegative set, the floor check and the adjustment are one statement;
// a rejected adjustment leaves the balance untouched.
func (r *accountRepository) AdjustBalance(ctx context.Context, discordID string, delta int64, requireNonNegative bool) error {
	q := r.db.NewUpdate().
		Model((*models.Account)(nil)).
		Set("balance = balance + ?", delta).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID)

	if requireNonNegative {
		q = q.Where("balance + ? >= 0", delta)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		if !requireNonNegative {
			return economy.ErrNotFound
		}
		// Either the account is missing or the floor rejected the delta.
		if _, err := r.GetByDiscordID(ctx, discordID); err != nil {
			return err
		}
		return economy.ErrInsufficientFunds
	}
	return nil
}

func (r *accountRepository) AddCharacter(ctx context.Context, instance *models.CharacterInstance) error {
	instance.ObtainedAt = time.Now()
	_, err := r.db.NewInsert().Model(instance).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add character instance: %w", err)
	}
	return nil
}

func (r *accountRepository) AddCharacters(ctx context.Context, accountID string, instances []*models.CharacterInstance) error {
	if len(instances) == 0 {
		return nil
	}
	now := time.Now()
	for _, instance := range instances {
		instance.ID = 0
		instance.AccountID = accountID
		instance.ObtainedAt = now
	}
	_, err := r.db.NewInsert().Model(&instances).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to add character instances: %w", err)
	}
	return nil
}

// RemoveCharacter deletes exactly one owned copy of characterID and returns
// its snapshot. Check and delete are one statement, so of two concurrent
// removals of the last copy only one can succeed. SKIP LOCKED steers
// concurrent removals to distinct copies when more than one exists.
func (r *accountRepository) RemoveCharacter(ctx context.Context, accountID string, characterID int64) (*models.CharacterInstance, error) {
	instance := new(models.CharacterInstance)
	res, err := r.db.NewDelete().
		Model(instance).
		Where("ci.id = (SELECT id FROM character_instances WHERE account_id = ? AND character_id = ? ORDER BY id LIMIT 1 FOR UPDATE SKIP LOCKED)",
			accountID, characterID).
		Returning("*").
		Exec(ctx, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to remove character instance: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return nil, economy.ErrNotFound
	}
	return instance, nil
}

func (r *accountRepository) ClearCharacters(ctx context.Context, accountID string) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.CharacterInstance)(nil)).
		Where("account_id = ?", accountID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear characters: %w", err)
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

func (r *accountRepository) GetCharacters(ctx context.Context, accountID string) ([]*models.CharacterInstance, error) {
	var instances []*models.CharacterInstance
	err := r.db.NewSelect().
		Model(&instances).
		Where("account_id = ?", accountID).
		Order("obtained_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get characters: %w", err)
	}
	return instances, nil
}

func (r *accountRepository) CountCharacter(ctx context.Context, accountID string, characterID int64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.CharacterInstance)(nil)).
		Where("account_id = ? AND character_id = ?", accountID, characterID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}

// SetFavorite adds or removes characterID in the account's favorites set with
// a single JSONB update, so concurrent toggles cannot clobber each other.
func (r *accountRepository) SetFavorite(ctx context.Context, discordID string, characterID int64, favorite bool) error {
	var q *bun.UpdateQuery
	if favorite {
		q = r.db.NewUpdate().
			Model((*models.Account)(nil)).
			Set("favorites = CASE WHEN favorites @> to_jsonb(?::bigint) THEN favorites ELSE favorites || to_jsonb(?::bigint) END",
				characterID, characterID).
			Where("discord_id = ?", discordID)
	} else {
		q = r.db.NewUpdate().
			Model((*models.Account)(nil)).
			Set("favorites = (SELECT coalesce(jsonb_agg(e), '[]'::jsonb) FROM jsonb_array_elements(favorites) e WHERE e <> to_jsonb(?::bigint))",
				characterID).
			Where("discord_id = ?", discordID)
	}

	res, err := q.Set("updated_at = ?", time.Now()).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update favorites: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return economy.ErrNotFound
	}
	return nil
}
