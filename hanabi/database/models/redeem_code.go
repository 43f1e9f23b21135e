package models

import (
	"time"

	"github.com/uptrace/bun"
)

type RewardType string

const (
	RewardCoins RewardType = "coins"
	// RewardCharacter is recognized but not granted yet; redemption of such a
	// code fails without mutation.
	RewardCharacter RewardType = "character"
)

type RedeemCode struct {
	bun.BaseModel `bun:"table:redeem_codes,alias:rc"`

	ID           int64      `bun:"id,pk,autoincrement"`
	Code         string     `bun:"code,notnull,unique"`
	RewardType   RewardType `bun:"reward_type,notnull"`
	RewardAmount int64      `bun:"reward_amount,notnull"`

	// MaxUses 0 means unbounded; ExpiresAt zero means the code never expires.
	MaxUses   int       `bun:"max_uses,notnull,default:0"`
	ExpiresAt time.Time `bun:"expires_at,nullzero"`

	CreatedBy string    `bun:"created_by,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`

	Uses []*RedeemUse `bun:"rel:has-many,join:code=code"`
}

// Expired reports whether the code's expiry instant has passed.
func (c *RedeemCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// RedeemUse records one successful redemption. The unique (code, user_id)
// constraint is what resolves concurrent redemptions of the same code.
type RedeemUse struct {
	bun.BaseModel `bun:"table:redeem_uses,alias:ru"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Code       string    `bun:"code,notnull,unique:redeem_uses_code_user"`
	UserID     string    `bun:"user_id,notnull,unique:redeem_uses_code_user"`
	RedeemedAt time.Time `bun:"redeemed_at,notnull,default:current_timestamp"`
}
