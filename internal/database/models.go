package database

import "time"

// Quote sources.
const (
	SourceText  = "text"
	SourcePhoto = "photo"
)

// Quote is one journaled price calculation.
type Quote struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	ChatID int64 `db:"chat_id"`
	UserID int64 `db:"user_id"`

	Brand          string `db:"brand"`
	Model          string `db:"model"`
	Year           int    `db:"year"`
	EngineVolumeCC int    `db:"engine_volume_cc"`
	FuelType       string `db:"fuel_type"`

	Category string `db:"category"`
	Price    int    `db:"price"`
	Source   string `db:"source"` // SourceText or SourcePhoto
}

// CategoryCount is the number of quotes in one tariff category.
type CategoryCount struct {
	Category string `db:"category"`
	Count    int    `db:"count"`
}

// QuoteStats summarizes the journal.
type QuoteStats struct {
	Total      int
	Users      int
	ByCategory []CategoryCount
}
