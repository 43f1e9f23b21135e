package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rarity tiers. Prices and special-claim eligibility key off these.
const (
	RarityCommon    = 1
	RarityRare      = 2
	RarityLegendary = 3
	MaxRarity       = 15
)

// CatalogEntry is the canonical, editable definition of a character. Owned
// copies are snapshots (CharacterInstance) and do not reference this row.
type CatalogEntry struct {
	bun.BaseModel `bun:"table:catalog_entries,alias:ce"`

	ID       int64  `bun:"id,pk"`
	Name     string `bun:"name,notnull"`
	Anime    string `bun:"anime,notnull"`
	Rarity   int    `bun:"rarity,notnull"`
	ImageURL string `bun:"image_url"`

	// Global lock: a locked character cannot be granted by any channel.
	Locked     bool   `bun:"locked,notnull,default:false"`
	LockedBy   string `bun:"locked_by"`
	LockReason string `bun:"lock_reason"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
