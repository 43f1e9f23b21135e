package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
)

// Engine moves character instances between accounts: peer gifts via the
// two-phase propose/confirm protocol, and admin grants.
type Engine struct {
	accounts  repositories.AccountRepository
	catalog   repositories.CatalogRepository
	cooldowns *cooldown.Tracker

	giftCooldown time.Duration
	payCooldown  time.Duration
}

func NewEngine(accounts repositories.AccountRepository, catalog repositories.CatalogRepository, cooldowns *cooldown.Tracker, giftCooldown, payCooldown time.Duration) *Engine {
	return &Engine{
		accounts:     accounts,
		catalog:      catalog,
		cooldowns:    cooldowns,
		giftCooldown: giftCooldown,
		payCooldown:  payCooldown,
	}
}

// ProposeGift validates a gift and returns the stateless token the sender
// later confirms with. Nothing is reserved: every check is repeated at
// confirm time against then-current state.
func (e *Engine) ProposeGift(ctx context.Context, senderID, recipientID string, characterID int64) (Token, error) {
	if senderID == recipientID {
		return Token{}, economy.ErrSelfTransfer
	}

	if remaining := e.cooldowns.Check(senderID, cooldown.ActionGift); remaining > 0 {
		return Token{}, &economy.CooldownActiveError{Action: cooldown.ActionGift, Remaining: remaining}
	}

	owned, err := e.accounts.CountCharacter(ctx, senderID, characterID)
	if err != nil {
		return Token{}, err
	}
	if owned == 0 {
		return Token{}, economy.ErrNotFound
	}

	if _, err := e.accounts.GetByDiscordID(ctx, recipientID); err != nil {
		return Token{}, err
	}

	return Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}, nil
}

// ConfirmGift executes a proposed gift. The token is advisory: the invoker
// must be the encoded sender, and ownership, lock state and cooldown are all
// re-validated now, not trusted from proposal time. Removal from the sender
// happens before the append is acknowledged; if the append fails the engine
// re-credits the removed instance and reports the outcome.
func (e *Engine) ConfirmGift(ctx context.Context, invokerID string, token Token) (*models.CharacterInstance, error) {
	if invokerID != token.SenderID {
		return nil, economy.ErrUnauthorized
	}
	if token.SenderID == token.RecipientID {
		return nil, economy.ErrSelfTransfer
	}

	if remaining := e.cooldowns.Check(token.SenderID, cooldown.ActionGift); remaining > 0 {
		return nil, &economy.CooldownActiveError{Action: cooldown.ActionGift, Remaining: remaining}
	}

	// Lock state is read at the moment of grant; it may have changed since the
	// proposal. A missing catalog row does not block the move: the owned copy
	// is a snapshot and stays giftable.
	locked, err := e.catalog.IsLocked(ctx, token.CharacterID)
	if err != nil && !errors.Is(err, economy.ErrNotFound) {
		return nil, err
	}
	if locked {
		return nil, economy.ErrLocked
	}

	// Atomic removal doubles as the ownership re-check: a concurrent gift or
	// sale of the last copy makes this fail with ErrNotFound.
	removed, err := e.accounts.RemoveCharacter(ctx, token.SenderID, token.CharacterID)
	if err != nil {
		return nil, err
	}

	granted := &models.CharacterInstance{
		AccountID:   token.RecipientID,
		CharacterID: removed.CharacterID,
		Name:        removed.Name,
		Anime:       removed.Anime,
		Rarity:      removed.Rarity,
		ImageURL:    removed.ImageURL,
		ObtainedVia: models.ObtainedGift,
	}
	if err := e.accounts.AddCharacter(ctx, granted); err != nil {
		return nil, e.compensateRemoval(ctx, "gift", token, removed, err)
	}

	e.cooldowns.Arm(token.SenderID, cooldown.ActionGift, e.giftCooldown)

	slog.Info("Gift completed",
		slog.String("type", "economy"),
		slog.String("sender_id", token.SenderID),
		slog.String("recipient_id", token.RecipientID),
		slog.Int64("character_id", token.CharacterID))

	return granted, nil
}

// CancelGift discards a proposal. Only the encoded sender may cancel; nothing
// is mutated either way.
func (e *Engine) CancelGift(invokerID string, token Token) error {
	if invokerID != token.SenderID {
		return economy.ErrUnauthorized
	}
	return nil
}

// Grant is the admin-authorized single-step give: a fresh snapshot of the
// catalog entry is appended to the recipient. No cooldown applies.
func (e *Engine) Grant(ctx context.Context, recipientID string, characterID int64) (*models.CharacterInstance, error) {
	entry, err := e.catalog.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	locked, err := e.catalog.IsLocked(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, economy.ErrLocked
	}

	if _, err := e.accounts.GetByDiscordID(ctx, recipientID); err != nil {
		return nil, err
	}

	instance := models.Snapshot(entry, models.ObtainedGive)
	instance.AccountID = recipientID
	if err := e.accounts.AddCharacter(ctx, instance); err != nil {
		return nil, err
	}
	return instance, nil
}

// GrantAll moves the source account's entire collection to the destination.
// The batch is attempted once: append everything to the destination, then
// clear the source. A failure between the two steps leaves duplicates rather
// than losses and is surfaced as a StorageError for operator follow-up.
func (e *Engine) GrantAll(ctx context.Context, sourceID, destID string) (int, error) {
	if sourceID == destID {
		return 0, economy.ErrSelfTransfer
	}
	if _, err := e.accounts.GetByDiscordID(ctx, destID); err != nil {
		return 0, err
	}

	instances, err := e.accounts.GetCharacters(ctx, sourceID)
	if err != nil {
		return 0, err
	}
	if len(instances) == 0 {
		return 0, nil
	}

	moved := make([]*models.CharacterInstance, len(instances))
	for i, src := range instances {
		moved[i] = &models.CharacterInstance{
			CharacterID: src.CharacterID,
			Name:        src.Name,
			Anime:       src.Anime,
			Rarity:      src.Rarity,
			ImageURL:    src.ImageURL,
			ObtainedVia: src.ObtainedVia,
		}
	}
	// The batch append is one INSERT; if it fails nothing has moved yet.
	if err := e.accounts.AddCharacters(ctx, destID, moved); err != nil {
		return 0, fmt.Errorf("giftall append: %w", err)
	}

	if _, err := e.accounts.ClearCharacters(ctx, sourceID); err != nil {
		serr := &economy.StorageError{Op: "giftall clear", Compensated: false, Err: err}
		slog.Error("Bulk transfer left duplicated instances",
			slog.String("type", "economy"),
			slog.String("source_id", sourceID),
			slog.String("dest_id", destID),
			slog.Int("count", len(instances)),
			slog.Any("error", err))
		return 0, serr
	}

	return len(instances), nil
}

// Pay moves coins between accounts. The debit is the store's conditional
// adjust with floor, so an overdraft fails atomically before anything moved;
// a credit failure after a successful debit is compensated by refunding the
// sender.
func (e *Engine) Pay(ctx context.Context, senderID, recipientID string, amount int64) error {
	if senderID == recipientID {
		return economy.ErrSelfTransfer
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}

	if remaining := e.cooldowns.Check(senderID, cooldown.ActionPay); remaining > 0 {
		return &economy.CooldownActiveError{Action: cooldown.ActionPay, Remaining: remaining}
	}

	if _, err := e.accounts.GetByDiscordID(ctx, recipientID); err != nil {
		return fmt.Errorf("recipient: %w", err)
	}

	if err := e.accounts.AdjustBalance(ctx, senderID, -amount, true); err != nil {
		return err
	}

	if err := e.accounts.AdjustBalance(ctx, recipientID, amount, false); err != nil {
		compErr := e.accounts.AdjustBalance(ctx, senderID, amount, false)
		serr := &economy.StorageError{Op: "pay credit", Compensated: compErr == nil, Err: err}
		slog.Error("Pay credit failed after debit",
			slog.String("type", "economy"),
			slog.String("sender_id", senderID),
			slog.String("recipient_id", recipientID),
			slog.Int64("amount", amount),
			slog.Bool("refunded", compErr == nil),
			slog.Any("error", err))
		return serr
	}

	e.cooldowns.Arm(senderID, cooldown.ActionPay, e.payCooldown)
	return nil
}

func (e *Engine) compensateRemoval(ctx context.Context, op string, token Token, removed *models.CharacterInstance, cause error) error {
	recredit := &models.CharacterInstance{
		AccountID:   token.SenderID,
		CharacterID: removed.CharacterID,
		Name:        removed.Name,
		Anime:       removed.Anime,
		Rarity:      removed.Rarity,
		ImageURL:    removed.ImageURL,
		ObtainedVia: removed.ObtainedVia,
	}
	compErr := e.accounts.AddCharacter(ctx, recredit)
	serr := &economy.StorageError{
		Op:          fmt.Sprintf("%s append", op),
		Compensated: compErr == nil,
		Err:         cause,
	}

	if compErr != nil {
		slog.Error("Compensating re-credit failed, instance lost",
			slog.String("type", "economy"),
			slog.String("op", op),
			slog.String("sender_id", token.SenderID),
			slog.Int64("character_id", removed.CharacterID),
			slog.Any("cause", cause),
			slog.Any("compensation_error", compErr))
	} else {
		slog.Warn("Transfer append failed, sender re-credited",
			slog.String("type", "economy"),
			slog.String("op", op),
			slog.String("sender_id", token.SenderID),
			slog.Int64("character_id", removed.CharacterID),
			slog.Any("cause", cause))
	}
	return serr
}
