package models

type State struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Abbreviation string `gorm:"size:2;uniqueIndex;not null" json:"abbreviation"`
	Name         string `gorm:"not null" json:"name"`

	Cities []City `gorm:"foreignKey:StateID;constraint:OnDelete:CASCADE" json:"-"`
}

type City struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	StateID uint   `gorm:"not null;index" json:"state_id"`
	State   State  `gorm:"foreignKey:StateID" json:"state"`
}
