package shop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
)

// The engine's interesting behavior is cache lifetime and the purchase
// critical section, so these tests run against small stateful fakes instead
// of call-by-call mocks.

type fakeAccounts struct {
	mu        sync.Mutex
	balances  map[string]int64
	instances []*models.CharacterInstance
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{balances: make(map[string]int64)}
}

func (f *fakeAccounts) GetOrCreate(ctx context.Context, discordID, username string) (*models.Account, error) {
	return &models.Account{DiscordID: discordID, Username: username}, nil
}

func (f *fakeAccounts) GetByDiscordID(ctx context.Context, discordID string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.Account{DiscordID: discordID, Balance: f.balances[discordID]}, nil
}

func (f *fakeAccounts) AdjustBalance(ctx context.Context, discordID string, delta int64, requireNonNegative bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.balances[discordID] + delta
	if requireNonNegative && next < 0 {
		return economy.ErrInsufficientFunds
	}
	f.balances[discordID] = next
	return nil
}

func (f *fakeAccounts) AddCharacter(ctx context.Context, instance *models.CharacterInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instances = append(f.instances, instance)
	return nil
}

func (f *fakeAccounts) AddCharacters(ctx context.Context, accountID string, instances []*models.CharacterInstance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instances = append(f.instances, instances...)
	return nil
}

func (f *fakeAccounts) RemoveCharacter(ctx context.Context, accountID string, characterID int64) (*models.CharacterInstance, error) {
	return nil, economy.ErrNotFound
}

func (f *fakeAccounts) ClearCharacters(ctx context.Context, accountID string) (int64, error) {
	return 0, nil
}

func (f *fakeAccounts) GetCharacters(ctx context.Context, accountID string) ([]*models.CharacterInstance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.CharacterInstance
	for _, inst := range f.instances {
		if inst.AccountID == accountID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeAccounts) CountCharacter(ctx context.Context, accountID string, characterID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, inst := range f.instances {
		if inst.AccountID == accountID && inst.CharacterID == characterID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAccounts) SetFavorite(ctx context.Context, discordID string, characterID int64, favorite bool) error {
	return nil
}

func (f *fakeAccounts) balance(discordID string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balances[discordID]
}

func (f *fakeAccounts) owned(discordID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, inst := range f.instances {
		if inst.AccountID == discordID {
			n++
		}
	}
	return n
}

type fakeCatalog struct {
	mu      sync.Mutex
	entries []*models.CatalogEntry
	samples int
}

func (f *fakeCatalog) Get(ctx context.Context, characterID int64) (*models.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == characterID {
			return e, nil
		}
	}
	return nil, economy.ErrNotFound
}

func (f *fakeCatalog) GetAll(ctx context.Context) ([]*models.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

func (f *fakeCatalog) Upsert(ctx context.Context, entry *models.CatalogEntry) error {
	return nil
}

func (f *fakeCatalog) Delete(ctx context.Context, characterID int64) error {
	return nil
}

func (f *fakeCatalog) IsLocked(ctx context.Context, characterID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == characterID {
			return e.Locked, nil
		}
	}
	return false, economy.ErrNotFound
}

func (f *fakeCatalog) SetLocked(ctx context.Context, characterID int64, locked bool, lockedBy, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == characterID {
			e.Locked = locked
			return nil
		}
	}
	return economy.ErrNotFound
}

func (f *fakeCatalog) SampleRandom(ctx context.Context, n, minRarity int) ([]*models.CatalogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples++
	if n > len(f.entries) {
		n = len(f.entries)
	}
	return f.entries[:n], nil
}

func (f *fakeCatalog) sampleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.samples
}

func testEntries(n int) []*models.CatalogEntry {
	entries := make([]*models.CatalogEntry, n)
	for i := range entries {
		entries[i] = &models.CatalogEntry{
			ID:     int64(i + 1),
			Name:   "Character",
			Anime:  "Anime",
			Rarity: 1 + i%3,
		}
	}
	return entries
}

func testConfig() Config {
	return Config{
		TTL:            time.Hour,
		MaxItems:       3,
		BaseMultiplier: 1000,
		Variance:       200,
		MinPrice:       100,
	}
}

func TestEngine_GetListing_Cached(t *testing.T) {
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(newFakeAccounts(), catalog, testConfig())
	chatID := snowflake.ID(1001)

	first, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	if len(first.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(first.Items))
	}
	for _, item := range first.Items {
		if item.Price < 100 {
			t.Errorf("item price %d below floor", item.Price)
		}
	}

	second, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	if !second.GeneratedAt.Equal(first.GeneratedAt) {
		t.Error("fresh listing was regenerated inside the TTL")
	}
	if catalog.sampleCount() != 1 {
		t.Errorf("catalog sampled %d times, want 1", catalog.sampleCount())
	}
}

func TestEngine_GetListing_RegeneratesAfterTTL(t *testing.T) {
	catalog := &fakeCatalog{entries: testEntries(10)}
	cfg := testConfig()
	cfg.TTL = 10 * time.Millisecond
	e := NewEngine(newFakeAccounts(), catalog, cfg)
	chatID := snowflake.ID(1001)

	if _, err := e.GetListing(context.Background(), chatID); err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, err := e.GetListing(context.Background(), chatID); err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}

	if catalog.sampleCount() != 2 {
		t.Errorf("catalog sampled %d times, want 2 after TTL expiry", catalog.sampleCount())
	}
}

func TestEngine_GetListing_PerChat(t *testing.T) {
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(newFakeAccounts(), catalog, testConfig())

	a, err := e.GetListing(context.Background(), snowflake.ID(1))
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	b, err := e.GetListing(context.Background(), snowflake.ID(2))
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}

	if a.ChatID == b.ChatID {
		t.Error("listings share a chat id")
	}
	if catalog.sampleCount() != 2 {
		t.Errorf("catalog sampled %d times, want one per chat", catalog.sampleCount())
	}
}

func TestEngine_RollPrice_Floor(t *testing.T) {
	e := NewEngine(newFakeAccounts(), &fakeCatalog{}, Config{
		TTL:            time.Hour,
		MaxItems:       3,
		BaseMultiplier: 0,
		Variance:       5,
		MinPrice:       100,
	})

	for i := 0; i < 50; i++ {
		if got := e.rollPrice(1); got != 100 {
			t.Fatalf("rollPrice() = %d, want the %d floor", got, 100)
		}
	}
}

func TestEngine_Purchase(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.balances["buyer"] = 1_000_000
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())
	chatID := snowflake.ID(1001)

	listing, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	want := listing.Items[1]

	item, err := e.Purchase(context.Background(), chatID, "buyer", 1)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if item.Character.ID != want.Character.ID {
		t.Errorf("bought character %d, want %d", item.Character.ID, want.Character.ID)
	}
	if got := accounts.balance("buyer"); got != 1_000_000-item.Price {
		t.Errorf("balance = %d, want %d", got, 1_000_000-item.Price)
	}
	if got := accounts.owned("buyer"); got != 1 {
		t.Fatalf("owned = %d, want 1", got)
	}
	if via := accounts.instances[0].ObtainedVia; via != models.ObtainedShop {
		t.Errorf("ObtainedVia = %q, want %q", via, models.ObtainedShop)
	}

	after, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	if len(after.Items) != len(listing.Items)-1 {
		t.Errorf("listing has %d items after purchase, want %d", len(after.Items), len(listing.Items)-1)
	}
	for _, remaining := range after.Items {
		if remaining.Character.ID == item.Character.ID {
			t.Error("sold slot still listed")
		}
	}
}

func TestEngine_Purchase_InsufficientFunds(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.balances["buyer"] = 1
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())
	chatID := snowflake.ID(1001)

	listing, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}

	if _, err := e.Purchase(context.Background(), chatID, "buyer", 0); !errors.Is(err, economy.ErrInsufficientFunds) {
		t.Fatalf("Purchase() error = %v, want ErrInsufficientFunds", err)
	}

	if got := accounts.balance("buyer"); got != 1 {
		t.Errorf("balance = %d, want untouched 1", got)
	}
	if got := accounts.owned("buyer"); got != 0 {
		t.Errorf("owned = %d, want 0", got)
	}
	after, _ := e.GetListing(context.Background(), chatID)
	if len(after.Items) != len(listing.Items) {
		t.Errorf("failed purchase removed a slot: %d items, want %d", len(after.Items), len(listing.Items))
	}
}

func TestEngine_Purchase_Locked(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.balances["buyer"] = 1_000_000
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())
	chatID := snowflake.ID(1001)

	listing, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	// Lock after listing: the check happens at purchase time.
	if err := catalog.SetLocked(context.Background(), listing.Items[0].Character.ID, true, "admin", "event"); err != nil {
		t.Fatalf("SetLocked() error = %v", err)
	}

	if _, err := e.Purchase(context.Background(), chatID, "buyer", 0); !errors.Is(err, economy.ErrLocked) {
		t.Fatalf("Purchase() error = %v, want ErrLocked", err)
	}
	if got := accounts.balance("buyer"); got != 1_000_000 {
		t.Errorf("balance = %d, want untouched", got)
	}
}

func TestEngine_Purchase_StaleIndex(t *testing.T) {
	accounts := newFakeAccounts()
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())
	chatID := snowflake.ID(1001)

	if _, err := e.GetListing(context.Background(), chatID); err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}

	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"past end", 3},
		{"far past end", 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.Purchase(context.Background(), chatID, "buyer", tt.index); !errors.Is(err, economy.ErrNotFound) {
				t.Errorf("Purchase(%d) error = %v, want ErrNotFound", tt.index, err)
			}
		})
	}
}

func TestEngine_Purchase_ExpiredListingRegenerates(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.balances["buyer"] = 1_000_000
	catalog := &fakeCatalog{entries: testEntries(10)}
	cfg := testConfig()
	cfg.TTL = 25 * time.Millisecond
	e := NewEngine(accounts, catalog, cfg)
	chatID := snowflake.ID(1001)

	if _, err := e.GetListing(context.Background(), chatID); err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	// Buying from an expired listing resolves against fresh stock, never the
	// hours-old one.
	item, err := e.Purchase(context.Background(), chatID, "buyer", 0)
	if err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if catalog.sampleCount() != 2 {
		t.Errorf("catalog sampled %d times, want 2 (regenerated before the sale)", catalog.sampleCount())
	}
	if got := accounts.balance("buyer"); got != 1_000_000-item.Price {
		t.Errorf("balance = %d, want %d", got, 1_000_000-item.Price)
	}
	if got := accounts.owned("buyer"); got != 1 {
		t.Errorf("owned = %d, want 1", got)
	}
}

func TestEngine_Purchase_BeforeFirstListing(t *testing.T) {
	accounts := newFakeAccounts()
	accounts.balances["buyer"] = 1_000_000
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())

	// A chat nobody has listed yet gets stock generated on the buy path.
	if _, err := e.Purchase(context.Background(), snowflake.ID(1001), "buyer", 0); err != nil {
		t.Fatalf("Purchase() error = %v", err)
	}
	if catalog.sampleCount() != 1 {
		t.Errorf("catalog sampled %d times, want 1", catalog.sampleCount())
	}
}

func TestEngine_Purchase_ConcurrentBuyers(t *testing.T) {
	accounts := newFakeAccounts()
	catalog := &fakeCatalog{entries: testEntries(10)}
	e := NewEngine(accounts, catalog, testConfig())
	chatID := snowflake.ID(1001)

	listing, err := e.GetListing(context.Background(), chatID)
	if err != nil {
		t.Fatalf("GetListing() error = %v", err)
	}
	slots := len(listing.Items)

	const buyers = 10
	buyerIDs := make([]string, buyers)
	for i := range buyerIDs {
		buyerIDs[i] = string(rune('a' + i))
		accounts.balances[buyerIDs[i]] = 1_000_000
	}

	// Everyone races for slot 0. Each sale shrinks the listing, so exactly
	// one buyer wins each slot and the rest fail bounds-checked.
	var wg sync.WaitGroup
	errs := make([]error, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.Purchase(context.Background(), chatID, buyerIDs[i], 0)
		}(i)
	}
	wg.Wait()

	won := 0
	for i, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, economy.ErrNotFound):
		default:
			t.Errorf("buyer %d: unexpected error %v", i, err)
		}
	}
	if won != slots {
		t.Errorf("%d purchases succeeded, want exactly %d (one per slot)", won, slots)
	}

	after, _ := e.GetListing(context.Background(), chatID)
	if len(after.Items) != 0 {
		t.Errorf("%d slots remain after selling out, want 0", len(after.Items))
	}
}
