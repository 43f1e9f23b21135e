package migration

import "time"

// Legacy documents as they live in the old bot's MongoDB. The old bot stored
// IDs and rarities loosely typed, so the raw fields stay interface{} and are
// normalized by the converters.

type MongoCharacter struct {
	ID       interface{} `bson:"id"`
	Name     string      `bson:"name"`
	Anime    string      `bson:"anime"`
	Rarity   interface{} `bson:"rarity"`
	ImageURL string      `bson:"img_url"`
	Locked   bool        `bson:"locked"`
}

type MongoUser struct {
	ID         interface{}      `bson:"id"`
	Username   string           `bson:"username"`
	FirstName  string           `bson:"first_name"`
	Balance    interface{}      `bson:"balance"`
	Characters []MongoCharacter `bson:"characters"`
	Favorites  []interface{}    `bson:"favorites"`
}

type TableStats struct {
	Read     int
	Imported int
	Skipped  int
}

type MigrationStats struct {
	Tables    map[string]*TableStats
	StartTime time.Time
}
