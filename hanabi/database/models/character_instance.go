package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CharacterInstance is one owned copy of a character. The catalog fields are
// denormalized on purpose: the row is a snapshot taken at grant time, so later
// catalog edits never change copies that are already owned.
type CharacterInstance struct {
	bun.BaseModel `bun:"table:character_instances,alias:ci"`

	ID          int64  `bun:"id,pk,autoincrement"`
	AccountID   string `bun:"account_id,notnull"`
	CharacterID int64  `bun:"character_id,notnull"`
	Name        string `bun:"name,notnull"`
	Anime       string `bun:"anime,notnull"`
	Rarity      int    `bun:"rarity,notnull"`
	ImageURL    string `bun:"image_url"`
	ObtainedVia string `bun:"obtained_via,notnull"`

	ObtainedAt time.Time `bun:"obtained_at,notnull,default:current_timestamp"`
}

// Grant channels recorded on instances.
const (
	ObtainedGift    = "gift"
	ObtainedGive    = "give"
	ObtainedShop    = "shop"
	ObtainedRedeem  = "redeem"
	ObtainedSpecial = "sclaim"
)

// Snapshot copies the current catalog fields into a fresh unowned instance.
func Snapshot(entry *CatalogEntry, via string) *CharacterInstance {
	return &CharacterInstance{
		CharacterID: entry.ID,
		Name:        entry.Name,
		Anime:       entry.Anime,
		Rarity:      entry.Rarity,
		ImageURL:    entry.ImageURL,
		ObtainedVia: via,
	}
}
