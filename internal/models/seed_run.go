package models

import "time"

// SeedRun records the last completed fetch of a catalogue collection. A run
// with zero records marks a collection the dataset returned empty.
type SeedRun struct {
	ID         uint      `gorm:"primaryKey"`
	Collection string    `gorm:"size:50;not null;uniqueIndex"`
	Records    int       `gorm:"not null"`
	FetchedAt  time.Time `gorm:"not null"`
}
