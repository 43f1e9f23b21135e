package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hanabi-bot/hanabi/hanabi/database/models"
	"github.com/hanabi-bot/hanabi/hanabi/database/repositories/mock"
	"github.com/hanabi-bot/hanabi/hanabi/economy"
	"github.com/hanabi-bot/hanabi/hanabi/economy/cooldown"
	"go.uber.org/mock/gomock"
)

const (
	senderID    = "111111111111111111"
	recipientID = "222222222222222222"
	characterID = int64(42)
)

func newTestEngine(accounts *mock.MockAccountRepository, catalog *mock.MockCatalogRepository) (*Engine, *cooldown.Tracker) {
	tracker := cooldown.NewTracker()
	return NewEngine(accounts, catalog, tracker, 5*time.Minute, 30*time.Second), tracker
}

func TestEngine_ProposeGift(t *testing.T) {
	tests := []struct {
		name        string
		recipient   string
		setup       func(accounts *mock.MockAccountRepository, tracker *cooldown.Tracker)
		wantErr     error
		wantErrType any
	}{
		{
			name:      "self gift rejected",
			recipient: senderID,
			wantErr:   economy.ErrSelfTransfer,
		},
		{
			name:      "cooldown active",
			recipient: recipientID,
			setup: func(_ *mock.MockAccountRepository, tracker *cooldown.Tracker) {
				tracker.Arm(senderID, cooldown.ActionGift, time.Hour)
			},
			wantErrType: &economy.CooldownActiveError{},
		},
		{
			name:      "sender does not own the character",
			recipient: recipientID,
			setup: func(accounts *mock.MockAccountRepository, _ *cooldown.Tracker) {
				accounts.EXPECT().
					CountCharacter(gomock.Any(), senderID, characterID).
					Return(0, nil)
			},
			wantErr: economy.ErrNotFound,
		},
		{
			name:      "recipient has no account",
			recipient: recipientID,
			setup: func(accounts *mock.MockAccountRepository, _ *cooldown.Tracker) {
				accounts.EXPECT().
					CountCharacter(gomock.Any(), senderID, characterID).
					Return(1, nil)
				accounts.EXPECT().
					GetByDiscordID(gomock.Any(), recipientID).
					Return(nil, economy.ErrNotFound)
			},
			wantErr: economy.ErrNotFound,
		},
		{
			name:      "success",
			recipient: recipientID,
			setup: func(accounts *mock.MockAccountRepository, _ *cooldown.Tracker) {
				accounts.EXPECT().
					CountCharacter(gomock.Any(), senderID, characterID).
					Return(2, nil)
				accounts.EXPECT().
					GetByDiscordID(gomock.Any(), recipientID).
					Return(&models.Account{DiscordID: recipientID}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := mock.NewMockAccountRepository(ctrl)
			catalog := mock.NewMockCatalogRepository(ctrl)
			e, tracker := newTestEngine(accounts, catalog)
			if tt.setup != nil {
				tt.setup(accounts, tracker)
			}

			token, err := e.ProposeGift(context.Background(), senderID, tt.recipient, characterID)

			if tt.wantErrType != nil {
				var cdErr *economy.CooldownActiveError
				if !errors.As(err, &cdErr) {
					t.Fatalf("ProposeGift() error = %v, want CooldownActiveError", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ProposeGift() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				want := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
				if token != want {
					t.Errorf("ProposeGift() token = %+v, want %+v", token, want)
				}
			}
		})
	}
}

func TestEngine_ConfirmGift_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, _ := newTestEngine(mock.NewMockAccountRepository(ctrl), mock.NewMockCatalogRepository(ctrl))

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	if _, err := e.ConfirmGift(context.Background(), recipientID, token); !errors.Is(err, economy.ErrUnauthorized) {
		t.Errorf("ConfirmGift() error = %v, want ErrUnauthorized", err)
	}
}

func TestEngine_ConfirmGift_LockedAtConfirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	catalog := mock.NewMockCatalogRepository(ctrl)
	e, _ := newTestEngine(accounts, catalog)

	// Lock landed between proposal and confirmation. Nothing is removed.
	catalog.EXPECT().
		IsLocked(gomock.Any(), characterID).
		Return(true, nil)

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	if _, err := e.ConfirmGift(context.Background(), senderID, token); !errors.Is(err, economy.ErrLocked) {
		t.Errorf("ConfirmGift() error = %v, want ErrLocked", err)
	}
}

func TestEngine_ConfirmGift_MissingCatalogRowStillGiftable(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	catalog := mock.NewMockCatalogRepository(ctrl)
	e, _ := newTestEngine(accounts, catalog)

	catalog.EXPECT().
		IsLocked(gomock.Any(), characterID).
		Return(false, economy.ErrNotFound)
	accounts.EXPECT().
		RemoveCharacter(gomock.Any(), senderID, characterID).
		Return(&models.CharacterInstance{CharacterID: characterID, Name: "Usagi", Rarity: 3}, nil)
	accounts.EXPECT().
		AddCharacter(gomock.Any(), gomock.Any()).
		Return(nil)

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	if _, err := e.ConfirmGift(context.Background(), senderID, token); err != nil {
		t.Errorf("ConfirmGift() error = %v, want nil", err)
	}
}

func TestEngine_ConfirmGift_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	catalog := mock.NewMockCatalogRepository(ctrl)
	e, tracker := newTestEngine(accounts, catalog)

	removed := &models.CharacterInstance{
		AccountID:   senderID,
		CharacterID: characterID,
		Name:        "Usagi",
		Anime:       "Sailor Moon",
		Rarity:      3,
		ObtainedVia: models.ObtainedShop,
	}

	catalog.EXPECT().
		IsLocked(gomock.Any(), characterID).
		Return(false, nil)
	accounts.EXPECT().
		RemoveCharacter(gomock.Any(), senderID, characterID).
		Return(removed, nil)
	accounts.EXPECT().
		AddCharacter(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, instance *models.CharacterInstance) error {
			if instance.AccountID != recipientID {
				t.Errorf("granted AccountID = %q, want %q", instance.AccountID, recipientID)
			}
			if instance.ObtainedVia != models.ObtainedGift {
				t.Errorf("granted ObtainedVia = %q, want %q", instance.ObtainedVia, models.ObtainedGift)
			}
			if instance.Name != removed.Name || instance.Rarity != removed.Rarity {
				t.Errorf("granted snapshot %+v does not carry the removed fields", instance)
			}
			return nil
		})

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	granted, err := e.ConfirmGift(context.Background(), senderID, token)
	if err != nil {
		t.Fatalf("ConfirmGift() error = %v", err)
	}
	if granted.AccountID != recipientID {
		t.Errorf("granted.AccountID = %q, want %q", granted.AccountID, recipientID)
	}
	if tracker.Check(senderID, cooldown.ActionGift) == 0 {
		t.Error("gift cooldown was not armed after a successful confirm")
	}
}

func TestEngine_ConfirmGift_AppendFailureRecredited(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	catalog := mock.NewMockCatalogRepository(ctrl)
	e, tracker := newTestEngine(accounts, catalog)

	removed := &models.CharacterInstance{AccountID: senderID, CharacterID: characterID, Name: "Usagi", Rarity: 3}
	appendErr := errors.New("connection reset")

	catalog.EXPECT().
		IsLocked(gomock.Any(), characterID).
		Return(false, nil)
	accounts.EXPECT().
		RemoveCharacter(gomock.Any(), senderID, characterID).
		Return(removed, nil)
	gomock.InOrder(
		accounts.EXPECT().
			AddCharacter(gomock.Any(), gomock.Any()).
			Return(appendErr),
		accounts.EXPECT().
			AddCharacter(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, instance *models.CharacterInstance) error {
				if instance.AccountID != senderID {
					t.Errorf("re-credit AccountID = %q, want sender %q", instance.AccountID, senderID)
				}
				return nil
			}),
	)

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	_, err := e.ConfirmGift(context.Background(), senderID, token)

	var serr *economy.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("ConfirmGift() error = %v, want StorageError", err)
	}
	if !serr.Compensated {
		t.Error("StorageError.Compensated = false, want true after successful re-credit")
	}
	if !errors.Is(err, appendErr) {
		t.Errorf("StorageError does not wrap the append cause: %v", err)
	}
	if tracker.Check(senderID, cooldown.ActionGift) != 0 {
		t.Error("gift cooldown was armed despite the failed transfer")
	}
}

func TestEngine_CancelGift(t *testing.T) {
	ctrl := gomock.NewController(t)
	e, _ := newTestEngine(mock.NewMockAccountRepository(ctrl), mock.NewMockCatalogRepository(ctrl))

	token := Token{SenderID: senderID, RecipientID: recipientID, CharacterID: characterID}
	if err := e.CancelGift(recipientID, token); !errors.Is(err, economy.ErrUnauthorized) {
		t.Errorf("CancelGift() by non-sender error = %v, want ErrUnauthorized", err)
	}
	if err := e.CancelGift(senderID, token); err != nil {
		t.Errorf("CancelGift() by sender error = %v, want nil", err)
	}
}

func TestEngine_Pay(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		amount    int64
		setup     func(accounts *mock.MockAccountRepository)
		wantErr   error
	}{
		{
			name:      "self pay rejected",
			recipient: senderID,
			amount:    100,
			wantErr:   economy.ErrSelfTransfer,
		},
		{
			name:      "insufficient funds",
			recipient: recipientID,
			amount:    100,
			setup: func(accounts *mock.MockAccountRepository) {
				accounts.EXPECT().
					GetByDiscordID(gomock.Any(), recipientID).
					Return(&models.Account{DiscordID: recipientID}, nil)
				accounts.EXPECT().
					AdjustBalance(gomock.Any(), senderID, int64(-100), true).
					Return(economy.ErrInsufficientFunds)
			},
			wantErr: economy.ErrInsufficientFunds,
		},
		{
			name:      "success",
			recipient: recipientID,
			amount:    250,
			setup: func(accounts *mock.MockAccountRepository) {
				accounts.EXPECT().
					GetByDiscordID(gomock.Any(), recipientID).
					Return(&models.Account{DiscordID: recipientID}, nil)
				accounts.EXPECT().
					AdjustBalance(gomock.Any(), senderID, int64(-250), true).
					Return(nil)
				accounts.EXPECT().
					AdjustBalance(gomock.Any(), recipientID, int64(250), false).
					Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			accounts := mock.NewMockAccountRepository(ctrl)
			e, _ := newTestEngine(accounts, mock.NewMockCatalogRepository(ctrl))
			if tt.setup != nil {
				tt.setup(accounts)
			}

			if err := e.Pay(context.Background(), senderID, tt.recipient, tt.amount); !errors.Is(err, tt.wantErr) {
				t.Errorf("Pay() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEngine_Pay_CreditFailureRefunded(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	e, tracker := newTestEngine(accounts, mock.NewMockCatalogRepository(ctrl))

	creditErr := errors.New("connection reset")
	accounts.EXPECT().
		GetByDiscordID(gomock.Any(), recipientID).
		Return(&models.Account{DiscordID: recipientID}, nil)
	gomock.InOrder(
		accounts.EXPECT().
			AdjustBalance(gomock.Any(), senderID, int64(-100), true).
			Return(nil),
		accounts.EXPECT().
			AdjustBalance(gomock.Any(), recipientID, int64(100), false).
			Return(creditErr),
		accounts.EXPECT().
			AdjustBalance(gomock.Any(), senderID, int64(100), false).
			Return(nil),
	)

	err := e.Pay(context.Background(), senderID, recipientID, 100)

	var serr *economy.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("Pay() error = %v, want StorageError", err)
	}
	if !serr.Compensated {
		t.Error("StorageError.Compensated = false, want true after refund")
	}
	if tracker.Check(senderID, cooldown.ActionPay) != 0 {
		t.Error("pay cooldown was armed despite the failed transfer")
	}
}

func TestEngine_GrantAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	e, _ := newTestEngine(accounts, mock.NewMockCatalogRepository(ctrl))

	instances := []*models.CharacterInstance{
		{AccountID: senderID, CharacterID: 1, Name: "Usagi", Rarity: 3, ObtainedVia: models.ObtainedShop},
		{AccountID: senderID, CharacterID: 2, Name: "Rei", Rarity: 2, ObtainedVia: models.ObtainedGift},
	}

	accounts.EXPECT().
		GetByDiscordID(gomock.Any(), recipientID).
		Return(&models.Account{DiscordID: recipientID}, nil)
	accounts.EXPECT().
		GetCharacters(gomock.Any(), senderID).
		Return(instances, nil)
	accounts.EXPECT().
		AddCharacters(gomock.Any(), recipientID, gomock.Len(2)).
		Return(nil)
	accounts.EXPECT().
		ClearCharacters(gomock.Any(), senderID).
		Return(int64(2), nil)

	moved, err := e.GrantAll(context.Background(), senderID, recipientID)
	if err != nil {
		t.Fatalf("GrantAll() error = %v", err)
	}
	if moved != 2 {
		t.Errorf("GrantAll() moved = %d, want 2", moved)
	}
}

func TestEngine_GrantAll_EmptySource(t *testing.T) {
	ctrl := gomock.NewController(t)
	accounts := mock.NewMockAccountRepository(ctrl)
	e, _ := newTestEngine(accounts, mock.NewMockCatalogRepository(ctrl))

	accounts.EXPECT().
		GetByDiscordID(gomock.Any(), recipientID).
		Return(&models.Account{DiscordID: recipientID}, nil)
	accounts.EXPECT().
		GetCharacters(gomock.Any(), senderID).
		Return(nil, nil)

	moved, err := e.GrantAll(context.Background(), senderID, recipientID)
	if err != nil {
		t.Fatalf("GrantAll() error = %v", err)
	}
	if moved != 0 {
		t.Errorf("GrantAll() moved = %d, want 0", moved)
	}
}
