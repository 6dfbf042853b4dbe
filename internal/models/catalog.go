package models

type Character struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null;size:100" json:"name"`
	Height    string     `gorm:"size:100" json:"height"`
	Gender    string     `gorm:"size:100" json:"gender"`
	HairColor string     `gorm:"not null;size:100" json:"hair_color"`
	EyeColor  string     `gorm:"size:100" json:"eye_color"`
	Favorites []Favorite `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE" json:"-"`
}

type Planet struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"not null;size:100" json:"name"`
	Diameter   string     `gorm:"size:100" json:"diameter"`
	Population string     `gorm:"size:100" json:"population"`
	Terrain    string     `gorm:"size:100" json:"terrain"`
	Favorites  []Favorite `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE" json:"-"`
}

type Vehicle struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null;size:100" json:"name"`
	Type         string     `gorm:"size:100" json:"type"`
	Model        string     `gorm:"size:100" json:"model"`
	Manufacturer string     `gorm:"size:100" json:"manufacturer"`
	Favorites    []Favorite `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
}
