package redeem

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
)

// Stateful fakes: the interesting behavior is the one-use-per-user and
// use-budget bookkeeping across several calls, which call-by-call mocks
// express poorly.

type fakeAccounts struct {
	balances   map[string]int64
	failCredit error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{balances: make(map[string]int64)}
}

func (f *fakeAccounts) GetOrCreate(ctx context.Context, discordID, username string) (*models.Account, error) {
	return &models.Account{DiscordID: discordID, Username: username, Balance: f.balances[discordID]}, nil
}

func (f *fakeAccounts) GetByDiscordID(ctx context.Context, discordID string) (*models.Account, error) {
	return &models.Account{DiscordID: discordID, Balance: f.balances[discordID]}, nil
}

func (f *fakeAccounts) AdjustBalance(ctx context.Context, discordID string, delta int64, requireNonNegative bool) error {
	if f.failCredit != nil {
		return f.failCredit
	}
	next := f.balances[discordID] + delta
	if requireNonNegative && next < 0 {
		return economy.ErrInsufficientFunds
	}
	f.balances[discordID] = next
	return nil
}

func (f *fakeAccounts) AddCharacter(ctx context.Context, instance *models.CharacterInstance) error {
	return nil
}

func (f *fakeAccounts) AddCharacters(ctx context.Context, accountID string, instances []*models.CharacterInstance) error {
	return nil
}

func (f *fakeAccounts) RemoveCharacter(ctx context.Context, accountID string, characterID int64) (*models.CharacterInstance, error) {
	return nil, economy.ErrNotFound
}

func (f *fakeAccounts) ClearCharacters(ctx context.Context, accountID string) (int64, error) {
	return 0, nil
}

func (f *fakeAccounts) GetCharacters(ctx context.Context, accountID string) ([]*models.CharacterInstance, error) {
	return nil, nil
}

func (f *fakeAccounts) CountCharacter(ctx context.Context, accountID string, characterID int64) (int, error) {
	return 0, nil
}

func (f *fakeAccounts) SetFavorite(ctx context.Context, discordID string, characterID int64, favorite bool) error {
	return nil
}

type fakeCodes struct {
	codes map[string]*models.RedeemCode
	uses  map[string]map[string]bool
}

func newFakeCodes() *fakeCodes {
	return &fakeCodes{
		codes: make(map[string]*models.RedeemCode),
		uses:  make(map[string]map[string]bool),
	}
}

func (f *fakeCodes) Create(ctx context.Context, code *models.RedeemCode) error {
	f.codes[code.Code] = code
	return nil
}

func (f *fakeCodes) GetByCode(ctx context.Context, code string) (*models.RedeemCode, error) {
	c, ok := f.codes[code]
	if !ok {
		return nil, economy.ErrNotFound
	}
	return c, nil
}

func (f *fakeCodes) CountUses(ctx context.Context, code string) (int, error) {
	return len(f.uses[code]), nil
}

func (f *fakeCodes) HasRedeemed(ctx context.Context, code, userID string) (bool, error) {
	return f.uses[code][userID], nil
}

func (f *fakeCodes) RecordUse(ctx context.Context, code, userID string, maxUses int) error {
	if f.uses[code][userID] {
		return economy.ErrAlreadyRedeemed
	}
	if maxUses > 0 && len(f.uses[code]) >= maxUses {
		return economy.ErrMaxUsesReached
	}
	if f.uses[code] == nil {
		f.uses[code] = make(map[string]bool)
	}
	f.uses[code][userID] = true
	return nil
}

func (f *fakeCodes) RemoveUse(ctx context.Context, code, userID string) error {
	delete(f.uses[code], userID)
	return nil
}

func (f *fakeCodes) List(ctx context.Context) ([]*models.RedeemCode, error) {
	out := make([]*models.RedeemCode, 0, len(f.codes))
	for _, c := range f.codes {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCodes) Delete(ctx context.Context, code string) error {
	if _, ok := f.codes[code]; !ok {
		return economy.ErrNotFound
	}
	delete(f.codes, code)
	delete(f.uses, code)
	return nil
}

func newTestEngine(accounts *fakeAccounts, codes *fakeCodes) (*Engine, *cooldown.Tracker) {
	tracker := cooldown.NewTracker()
	// Zero cooldown so walkthroughs can redeem back to back.
	return NewEngine(accounts, codes, tracker, 0), tracker
}

func mustCreate(t *testing.T, e *Engine, maxUses int, expiresAt time.Time) *models.RedeemCode {
	t.Helper()
	code, err := e.CreateCode(context.Background(), "admin", models.RewardCoins, 500, maxUses, expiresAt)
	if err != nil {
		t.Fatalf("CreateCode() error = %v", err)
	}
	return code
}

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if len(code) != codeLength {
			t.Fatalf("len(code) = %d, want %d", len(code), codeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(codeChars, r) {
				t.Fatalf("code %q contains %q outside the allowed set", code, r)
			}
		}
		if seen[code] {
			t.Fatalf("GenerateCode() repeated %q within 20 draws", code)
		}
		seen[code] = true
	}
}

func TestEngine_CreateCode_Validation(t *testing.T) {
	tests := []struct {
		name       string
		rewardType models.RewardType
		amount     int64
		maxUses    int
	}{
		{"unknown reward type", models.RewardType("stickers"), 500, 0},
		{"zero amount", models.RewardCoins, 0, 0},
		{"negative amount", models.RewardCoins, -5, 0},
		{"negative max uses", models.RewardCoins, 500, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(newFakeAccounts(), newFakeCodes())
			if _, err := e.CreateCode(context.Background(), "admin", tt.rewardType, tt.amount, tt.maxUses, time.Time{}); err == nil {
				t.Error("CreateCode() error = nil, want error")
			}
		})
	}
}

func TestEngine_CreateCode(t *testing.T) {
	codes := newFakeCodes()
	e, _ := newTestEngine(newFakeAccounts(), codes)

	code := mustCreate(t, e, 3, time.Time{})
	if len(code.Code) != codeLength {
		t.Errorf("len(Code) = %d, want %d", len(code.Code), codeLength)
	}
	if code.RewardType != models.RewardCoins || code.RewardAmount != 500 || code.MaxUses != 3 {
		t.Errorf("created code fields = %+v", code)
	}
	if code.CreatedBy != "admin" {
		t.Errorf("CreatedBy = %q, want admin", code.CreatedBy)
	}
	if _, ok := codes.codes[code.Code]; !ok {
		t.Error("code was not persisted")
	}
}

func TestEngine_Redeem_UseBudget(t *testing.T) {
	accounts := newFakeAccounts()
	e, _ := newTestEngine(accounts, newFakeCodes())
	code := mustCreate(t, e, 2, time.Time{})
	ctx := context.Background()

	if _, err := e.Redeem(ctx, "alice", "alice", code.Code); err != nil {
		t.Fatalf("first redeem error = %v", err)
	}
	if got := accounts.balances["alice"]; got != 500 {
		t.Errorf("alice balance = %d, want 500", got)
	}

	if _, err := e.Redeem(ctx, "alice", "alice", code.Code); !errors.Is(err, economy.ErrAlreadyRedeemed) {
		t.Errorf("repeat redeem error = %v, want ErrAlreadyRedeemed", err)
	}
	if got := accounts.balances["alice"]; got != 500 {
		t.Errorf("alice balance = %d after rejected repeat, want 500", got)
	}

	if _, err := e.Redeem(ctx, "bob", "bob", code.Code); err != nil {
		t.Fatalf("second user redeem error = %v", err)
	}

	if _, err := e.Redeem(ctx, "carol", "carol", code.Code); !errors.Is(err, economy.ErrMaxUsesReached) {
		t.Errorf("over-budget redeem error = %v, want ErrMaxUsesReached", err)
	}
	if got := accounts.balances["carol"]; got != 0 {
		t.Errorf("carol balance = %d, want 0", got)
	}
}

func TestEngine_Redeem_UnboundedUses(t *testing.T) {
	accounts := newFakeAccounts()
	e, _ := newTestEngine(accounts, newFakeCodes())
	code := mustCreate(t, e, 0, time.Time{})
	ctx := context.Background()

	for _, user := range []string{"a", "b", "c", "d", "e"} {
		if _, err := e.Redeem(ctx, user, user, code.Code); err != nil {
			t.Fatalf("redeem by %q error = %v", user, err)
		}
	}
}

func TestEngine_Redeem_Expired(t *testing.T) {
	accounts := newFakeAccounts()
	e, _ := newTestEngine(accounts, newFakeCodes())
	// One second past the deadline is already expired.
	code := mustCreate(t, e, 0, time.Now().Add(-time.Second))

	if _, err := e.Redeem(context.Background(), "alice", "alice", code.Code); !errors.Is(err, economy.ErrExpired) {
		t.Fatalf("Redeem() error = %v, want ErrExpired", err)
	}
	if got := accounts.balances["alice"]; got != 0 {
		t.Errorf("alice balance = %d after expired redeem, want 0", got)
	}
}

func TestEngine_Redeem_UnknownCode(t *testing.T) {
	e, _ := newTestEngine(newFakeAccounts(), newFakeCodes())

	if _, err := e.Redeem(context.Background(), "alice", "alice", "NOSUCHCODE"); !errors.Is(err, economy.ErrNotFound) {
		t.Errorf("Redeem() error = %v, want ErrNotFound", err)
	}
}

func TestEngine_Redeem_UnsupportedRewardType(t *testing.T) {
	accounts := newFakeAccounts()
	codes := newFakeCodes()
	e, _ := newTestEngine(accounts, codes)

	codes.codes["CHARCODE01"] = &models.RedeemCode{
		Code:         "CHARCODE01",
		RewardType:   models.RewardCharacter,
		RewardAmount: 1,
	}

	if _, err := e.Redeem(context.Background(), "alice", "alice", "CHARCODE01"); !errors.Is(err, economy.ErrUnsupported) {
		t.Fatalf("Redeem() error = %v, want ErrUnsupported", err)
	}
	if len(codes.uses["CHARCODE01"]) != 0 {
		t.Error("rejected redeem recorded a use")
	}
}

func TestEngine_Redeem_CooldownActive(t *testing.T) {
	e, tracker := newTestEngine(newFakeAccounts(), newFakeCodes())
	code := mustCreate(t, e, 0, time.Time{})
	tracker.Arm("alice", cooldown.ActionRedeem, time.Hour)

	_, err := e.Redeem(context.Background(), "alice", "alice", code.Code)
	var cdErr *economy.CooldownActiveError
	if !errors.As(err, &cdErr) {
		t.Fatalf("Redeem() error = %v, want CooldownActiveError", err)
	}
}

func TestEngine_Redeem_CreditFailureFreesUse(t *testing.T) {
	accounts := newFakeAccounts()
	codes := newFakeCodes()
	e, _ := newTestEngine(accounts, codes)
	code := mustCreate(t, e, 1, time.Time{})
	ctx := context.Background()

	accounts.failCredit = errors.New("connection reset")
	_, err := e.Redeem(ctx, "alice", "alice", code.Code)

	var serr *economy.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("Redeem() error = %v, want StorageError", err)
	}
	if !serr.Compensated {
		t.Error("StorageError.Compensated = false, want true after the use was released")
	}
	if len(codes.uses[code.Code]) != 0 {
		t.Fatal("use slot still held after failed credit")
	}

	// The released slot makes a retry possible.
	accounts.failCredit = nil
	if _, err := e.Redeem(ctx, "alice", "alice", code.Code); err != nil {
		t.Fatalf("retry after released slot error = %v", err)
	}
	if got := accounts.balances["alice"]; got != 500 {
		t.Errorf("alice balance = %d after retry, want 500", got)
	}
}

func TestEngine_DeleteCode(t *testing.T) {
	codes := newFakeCodes()
	e, _ := newTestEngine(newFakeAccounts(), codes)
	code := mustCreate(t, e, 0, time.Time{})

	if err := e.DeleteCode(context.Background(), code.Code); err != nil {
		t.Fatalf("DeleteCode() error = %v", err)
	}
	if err := e.DeleteCode(context.Background(), code.Code); !errors.Is(err, economy.ErrNotFound) {
		t.Errorf("repeat DeleteCode() error = %v, want ErrNotFound", err)
	}
}
