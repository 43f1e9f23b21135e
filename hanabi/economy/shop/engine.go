package shop

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"golang.org/x/sync/singleflight"
)

type Config struct {
	TTL            time.Duration
	MaxItems       int
	BaseMultiplier int64
	Variance       int64
	MinPrice       int64
}

// Item is one purchasable slot: a catalog snapshot plus its rolled price.
type Item struct {
	Character models.CatalogEntry
	Price     int64
}

// Listing is the rotating per-chat inventory. Items shrink as they sell and
// the whole listing is replaced when it ages past the TTL.
type Listing struct {
	ChatID      snowflake.ID
	GeneratedAt time.Time
	Items       []Item
}

// chatShop owns one chat's cached listing. Its mutex is the per-chat critical
// section: listing state lives in process memory outside the store's
// atomicity, so every read-then-mutate sequence holds it.
type chatShop struct {
	mu      sync.Mutex
	listing *Listing
}

// Engine serves TTL-cached per-chat listings and executes purchases against
// the account store.
type Engine struct {
	accounts repositories.AccountRepository
	catalog  repositories.CatalogRepository
	cfg      Config

	mu    sync.Mutex
	chats map[snowflake.ID]*chatShop

	regen singleflight.Group
}

func NewEngine(accounts repositories.AccountRepository, catalog repositories.CatalogRepository, cfg Config) *Engine {
	return &Engine{
		accounts: accounts,
		catalog:  catalog,
		cfg:      cfg,
		chats:    make(map[snowflake.ID]*chatShop),
	}
}

// TTL reports how long a listing lives before regeneration.
func (e *Engine) TTL() time.Duration {
	return e.cfg.TTL
}

func (e *Engine) chatState(chatID snowflake.ID) *chatShop {
	e.mu.Lock()
	defer e.mu.Unlock()
	cs, ok := e.chats[chatID]
	if !ok {
		cs = &chatShop{}
		e.chats[chatID] = cs
	}
	return cs
}

// GetListing returns the chat's current listing, regenerating it when stale.
// Concurrent regenerations for one chat collapse to a single sample so exactly
// one generation result lands in the cache.
func (e *Engine) GetListing(ctx context.Context, chatID snowflake.ID) (Listing, error) {
	cs := e.chatState(chatID)

	cs.mu.Lock()
	if cs.listing != nil && time.Since(cs.listing.GeneratedAt) < e.cfg.TTL {
		listing := copyListing(cs.listing)
		cs.mu.Unlock()
		return listing, nil
	}
	cs.mu.Unlock()

	return e.regenerate(ctx, chatID, cs, false)
}

// Refresh discards the cached listing and generates a new one.
func (e *Engine) Refresh(ctx context.Context, chatID snowflake.ID) (Listing, error) {
	return e.regenerate(ctx, chatID, e.chatState(chatID), true)
}

func (e *Engine) regenerate(ctx context.Context, chatID snowflake.ID, cs *chatShop, force bool) (Listing, error) {
	v, err, _ := e.regen.Do(chatID.String(), func() (interface{}, error) {
		// Re-check under the chat lock: another flight may have refilled the
		// cache while this caller was queued.
		if !force {
			cs.mu.Lock()
			if cs.listing != nil && time.Since(cs.listing.GeneratedAt) < e.cfg.TTL {
				listing := copyListing(cs.listing)
				cs.mu.Unlock()
				return listing, nil
			}
			cs.mu.Unlock()
		}

		entries, err := e.catalog.SampleRandom(ctx, e.cfg.MaxItems, 0)
		if err != nil {
			return Listing{}, err
		}

		listing := &Listing{
			ChatID:      chatID,
			GeneratedAt: time.Now(),
			Items:       make([]Item, 0, len(entries)),
		}
		for _, entry := range entries {
			listing.Items = append(listing.Items, Item{
				Character: *entry,
				Price:     e.rollPrice(entry.Rarity),
			})
		}

		cs.mu.Lock()
		cs.listing = listing
		result := copyListing(listing)
		cs.mu.Unlock()

		slog.Debug("Shop listing regenerated",
			slog.String("type", "economy"),
			slog.String("chat_id", chatID.String()),
			slog.Int("items", len(listing.Items)))
		return result, nil
	})
	if err != nil {
		return Listing{}, err
	}
	return v.(Listing), nil
}

func (e *Engine) rollPrice(rarity int) int64 {
	price := int64(rarity)*e.cfg.BaseMultiplier + rand.Int63n(2*e.cfg.Variance+1) - e.cfg.Variance
	if price < e.cfg.MinPrice {
		price = e.cfg.MinPrice
	}
	return price
}

// Purchase buys the item at index from the chat's current listing. The whole
// sequence holds the chat's critical section, so two buyers cannot both win
// the same slot: the loser sees the shrunken listing and fails bounds-checked.
// Expired stock is never sold: a stale listing is regenerated first and the
// index resolves against the fresh one, same as the listing path.
// The balance debit itself is the store's conditional adjust with floor.
func (e *Engine) Purchase(ctx context.Context, chatID snowflake.ID, userID string, index int) (Item, error) {
	cs := e.chatState(chatID)

	cs.mu.Lock()
	stale := cs.listing == nil || time.Since(cs.listing.GeneratedAt) >= e.cfg.TTL
	cs.mu.Unlock()
	if stale {
		if _, err := e.regenerate(ctx, chatID, cs, false); err != nil {
			return Item{}, err
		}
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.listing == nil || time.Since(cs.listing.GeneratedAt) >= e.cfg.TTL ||
		index < 0 || index >= len(cs.listing.Items) {
		return Item{}, economy.ErrNotFound
	}
	item := cs.listing.Items[index]

	// Lock state is checked at the moment of grant, not at listing time.
	locked, err := e.catalog.IsLocked(ctx, item.Character.ID)
	if err != nil && !errors.Is(err, economy.ErrNotFound) {
		return Item{}, err
	}
	if locked {
		return Item{}, economy.ErrLocked
	}

	if err := e.accounts.AdjustBalance(ctx, userID, -item.Price, true); err != nil {
		return Item{}, err
	}

	instance := models.Snapshot(&item.Character, models.ObtainedShop)
	instance.AccountID = userID
	if err := e.accounts.AddCharacter(ctx, instance); err != nil {
		compErr := e.accounts.AdjustBalance(ctx, userID, item.Price, false)
		serr := &economy.StorageError{Op: "shop purchase", Compensated: compErr == nil, Err: err}
		slog.Error("Purchase grant failed after debit",
			slog.String("type", "economy"),
			slog.String("chat_id", chatID.String()),
			slog.String("user_id", userID),
			slog.Int64("character_id", item.Character.ID),
			slog.Bool("refunded", compErr == nil),
			slog.Any("error", err))
		return Item{}, serr
	}

	// Sold slots are removed, not replaced, until the next regeneration.
	cs.listing.Items = append(cs.listing.Items[:index], cs.listing.Items[index+1:]...)

	return item, nil
}

func copyListing(l *Listing) Listing {
	out := Listing{ChatID: l.ChatID, GeneratedAt: l.GeneratedAt, Items: make([]Item, len(l.Items))}
	copy(out.Items, l.Items)
	return out
}
