package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/uptrace/bun"
)

type RedeemRepository interface {
	Create(ctx context.Context, code *models.RedeemCode) error
	GetByCode(ctx context.Context, code string) (*models.RedeemCode, error)
	CountUses(ctx context.Context, code string) (int, error)
	HasRedeemed(ctx context.Context, code string, userID string) (bool, error)
	RecordUse(ctx context.Context, code string, userID string, maxUses int) error
	RemoveUse(ctx context.Context, code string, userID string) error
	List(ctx context.Context) ([]*models.RedeemCode, error)
	Delete(ctx context.Context, code string) error
}

type redeemRepository struct {
	db *bun.DB
}

func NewRedeemRepository(db *bun.DB) RedeemRepository {
	return &redeemRepository{db: db}
}

// NormalizeCode case-normalizes user input before any lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *redeemRepository) Create(ctx context.Context, code *models.RedeemCode) error {
	code.Code = NormalizeCode(code.Code)
	code.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(code).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create redeem code: %w", err)
	}
	return nil
}

func (r *redeemRepository) GetByCode(ctx context.Context, code string) (*models.RedeemCode, error) {
	rc := new(models.RedeemCode)
	err := r.db.NewSelect().
		Model(rc).
		Where("code = ?", NormalizeCode(code)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, economy.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get redeem code: %w", err)
	}
	return rc, nil
}

func (r *redeemRepository) CountUses(ctx context.Context, code string) (int, error) {
	count, err := r.db.NewSelect().
		Model((*models.RedeemUse)(nil)).
		Where("code = ?", NormalizeCode(code)).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count uses: %w", err)
	}
	return count, nil
}

func (r *redeemRepository) HasRedeemed(ctx context.Context, code string, userID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.RedeemUse)(nil)).
		Where("code = ? AND user_id = ?", NormalizeCode(code), userID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}
	return exists, nil
}

// RecordUse inserts the user's redemption while re-checking the per-user and
// max-uses conditions inside one transaction that locks the code row. Two
// concurrent redemptions that both passed the engine's pre-checks serialize
// here; the loser gets ErrAlreadyRedeemed or ErrMaxUsesReached.
func (r *redeemRepository) RecordUse(ctx context.Context, code string, userID string, maxUses int) error {
	code = NormalizeCode(code)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialize all uses of one code on its row lock.
	var codeID int64
	err = tx.NewSelect().
		Model((*models.RedeemCode)(nil)).
		Column("id").
		Where("code = ?", code).
		For("UPDATE").
		Scan(ctx, &codeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return economy.ErrNotFound
		}
		return fmt.Errorf("failed to lock redeem code: %w", err)
	}

	// Re-check both conditions under the lock; the earlier engine checks may
	// have raced another redemption.
	redeemed, err := tx.NewSelect().
		Model((*models.RedeemUse)(nil)).
		Where("code = ? AND user_id = ?", code, userID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check redemption: %w", err)
	}
	if redeemed {
		return economy.ErrAlreadyRedeemed
	}

	if maxUses > 0 {
		count, err := tx.NewSelect().
			Model((*models.RedeemUse)(nil)).
			Where("code = ?", code).
			Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count uses: %w", err)
		}
		if count >= maxUses {
			return economy.ErrMaxUsesReached
		}
	}

	use := &models.RedeemUse{
		Code:       code,
		UserID:     userID,
		RedeemedAt: time.Now(),
	}
	// The unique (code, user_id) constraint backs the check above.
	if _, err := tx.NewInsert().Model(use).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record use: %w", err)
	}

	return tx.Commit()
}

// RemoveUse deletes a recorded redemption, freeing the slot again. Used as
// the compensation step when the reward credit fails after the use was
// recorded.
func (r *redeemRepository) RemoveUse(ctx context.Context, code string, userID string) error {
	_, err := r.db.NewDelete().
		Model((*models.RedeemUse)(nil)).
		Where("code = ?", NormalizeCode(code)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove use: %w", err)
	}
	return nil
}

func (r *redeemRepository) List(ctx context.Context) ([]*models.RedeemCode, error) {
	var codes []*models.RedeemCode
	err := r.db.NewSelect().
		Model(&codes).
		Relation("Uses").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list redeem codes: %w", err)
	}
	return codes, nil
}

// Delete removes a code together with its recorded uses.
func (r *redeemRepository) Delete(ctx context.Context, code string) error {
	normalized := NormalizeCode(code)

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NewDelete().
		Model((*models.RedeemCode)(nil)).
		Where("code = ?", normalized).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete redeem code: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return economy.ErrNotFound
	}

	if _, err := tx.NewDelete().
		Model((*models.RedeemUse)(nil)).
		Where("code = ?", normalized).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete code uses: %w", err)
	}

	return tx.Commit()
}
