package redeem

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
)

const (
	codeLength = 10
	codeChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Engine runs the redemption code lifecycle: admin creation and listing,
// user redemption with the one-use-per-user guarantee, and deletion.
type Engine struct {
	accounts  repositories.AccountRepository
	codes     repositories.RedeemRepository
	cooldowns *cooldown.Tracker

	redeemCooldown time.Duration
}

func NewEngine(accounts repositories.AccountRepository, codes repositories.RedeemRepository, cooldowns *cooldown.Tracker, redeemCooldown time.Duration) *Engine {
	return &Engine{
		accounts:       accounts,
		codes:          codes,
		cooldowns:      cooldowns,
		redeemCooldown: redeemCooldown,
	}
}

// GenerateCode returns a fresh random code. The 36^10 space makes collisions
// a non-issue; the unique column on redeem_codes is the backstop.
func GenerateCode() (string, error) {
	b := make([]byte, codeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		b[i] = codeChars[n.Int64()]
	}
	return string(b), nil
}

// CreateCode mints a new redemption code. maxUses of 0 means unbounded; a
// zero expiresAt means the code never expires.
func (e *Engine) CreateCode(ctx context.Context, createdBy string, rewardType models.RewardType, amount int64, maxUses int, expiresAt time.Time) (*models.RedeemCode, error) {
	switch rewardType {
	case models.RewardCoins, models.RewardCharacter:
	default:
		return nil, fmt.Errorf("reward type %q: %w", rewardType, economy.ErrUnsupported)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("reward amount must be positive")
	}
	if maxUses < 0 {
		return nil, fmt.Errorf("max uses must not be negative")
	}

	raw, err := GenerateCode()
	if err != nil {
		return nil, err
	}

	code := &models.RedeemCode{
		Code:         raw,
		RewardType:   rewardType,
		RewardAmount: amount,
		MaxUses:      maxUses,
		ExpiresAt:    expiresAt,
		CreatedBy:    createdBy,
	}
	if err := e.codes.Create(ctx, code); err != nil {
		return nil, err
	}

	slog.Info("Redeem code created",
		slog.String("type", "economy"),
		slog.String("code", code.Code),
		slog.String("reward_type", string(rewardType)),
		slog.Int64("amount", amount),
		slog.Int("max_uses", maxUses),
		slog.String("created_by", createdBy))
	return code, nil
}

// Redeem applies a code for a user. Validation runs cheapest-first; the
// per-user and use-budget checks happen inside the store under the code's
// row lock, so two racing redeemers of the last slot resolve to exactly one
// winner.
func (e *Engine) Redeem(ctx context.Context, userID string, username string, rawCode string) (*models.RedeemCode, error) {
	if remaining := e.cooldowns.Check(userID, cooldown.ActionRedeem); remaining > 0 {
		return nil, &economy.CooldownActiveError{Action: cooldown.ActionRedeem, Remaining: remaining}
	}

	code, err := e.codes.GetByCode(ctx, rawCode)
	if err != nil {
		return nil, err
	}
	if code.Expired(time.Now()) {
		return nil, economy.ErrExpired
	}
	if code.RewardType != models.RewardCoins {
		return nil, fmt.Errorf("reward type %q: %w", code.RewardType, economy.ErrUnsupported)
	}

	if _, err := e.accounts.GetOrCreate(ctx, userID, username); err != nil {
		return nil, err
	}

	if err := e.codes.RecordUse(ctx, code.Code, userID, code.MaxUses); err != nil {
		return nil, err
	}

	if err := e.accounts.AdjustBalance(ctx, userID, code.RewardAmount, false); err != nil {
		// The use row is already down; free the slot again so the user
		// can retry instead of being locked out rewardless.
		compErr := e.codes.RemoveUse(ctx, code.Code, userID)
		serr := &economy.StorageError{Op: "redeem credit", Compensated: compErr == nil, Err: err}
		slog.Error("Redeem credit failed after use recorded",
			slog.String("type", "economy"),
			slog.String("code", code.Code),
			slog.String("user_id", userID),
			slog.Bool("use_released", compErr == nil),
			slog.Any("error", err))
		return nil, serr
	}

	e.cooldowns.Arm(userID, cooldown.ActionRedeem, e.redeemCooldown)

	slog.Info("Redeem code applied",
		slog.String("type", "economy"),
		slog.String("code", code.Code),
		slog.String("user_id", userID),
		slog.Int64("amount", code.RewardAmount))
	return code, nil
}

// ListCodes returns every code with its recorded uses, newest first.
func (e *Engine) ListCodes(ctx context.Context) ([]*models.RedeemCode, error) {
	return e.codes.List(ctx)
}

// DeleteCode removes a code; its use history goes with it.
func (e *Engine) DeleteCode(ctx context.Context, rawCode string) error {
	return e.codes.Delete(ctx, rawCode)
}
