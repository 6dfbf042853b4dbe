package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidFavoriteTarget = errors.New("favorite must reference exactly one of character, planet or vehicle")

// TargetKind names the table a favorite points at.
type TargetKind string

const (
	KindCharacter TargetKind = "character"
	KindPlanet    TargetKind = "planet"
	KindVehicle   TargetKind = "vehicle"
)

// ParseTargetKind accepts the lower-case kind used in URLs.
func ParseTargetKind(s string) (TargetKind, bool) {
	switch k := TargetKind(s); k {
	case KindCharacter, KindPlanet, KindVehicle:
		return k, true
	}
	return "", false
}

// Title returns the kind with its first letter upper-cased, e.g. "Planet".
func (k TargetKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// Column is the favorites column holding ids of this kind.
func (k TargetKind) Column() string {
	return string(k) + "_id"
}

// FavoriteTarget is the single entity a favorite refers to.
type FavoriteTarget struct {
	Kind TargetKind
	ID   uint
}

type Favorite struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CharacterID *uint     `gorm:"index;check:chk_favorites_one_target,(CASE WHEN character_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN planet_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN vehicle_id IS NULL THEN 0 ELSE 1 END) = 1" json:"character_id"`
	PlanetID    *uint     `gorm:"index" json:"planet_id"`
	VehicleID   *uint     `gorm:"index" json:"vehicle_id"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// NewFavorite builds a favorite with only the column for target populated.
func NewFavorite(userID uint, target FavoriteTarget) Favorite {
	id := target.ID
	fav := Favorite{UserID: userID}
	switch target.Kind {
	case KindCharacter:
		fav.CharacterID = &id
	case KindPlanet:
		fav.PlanetID = &id
	case KindVehicle:
		fav.VehicleID = &id
	}
	return fav
}

// Target reports what the favorite points at. ok is false when the row
// does not reference exactly one entity.
func (f Favorite) Target() (target FavoriteTarget, ok bool) {
	n := 0
	if f.CharacterID != nil {
		target, n = FavoriteTarget{Kind: KindCharacter, ID: *f.CharacterID}, n+1
	}
	if f.PlanetID != nil {
		target, n = FavoriteTarget{Kind: KindPlanet, ID: *f.PlanetID}, n+1
	}
	if f.VehicleID != nil {
		target, n = FavoriteTarget{Kind: KindVehicle, ID: *f.VehicleID}, n+1
	}
	if n != 1 {
		return FavoriteTarget{}, false
	}
	return target, true
}

func (f *Favorite) BeforeSave(tx *gorm.DB) error {
	if _, ok := f.Target(); !ok {
		return ErrInvalidFavoriteTarget
	}
	return nil
}
