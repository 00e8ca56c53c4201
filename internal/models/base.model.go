package models

type BaseModel struct {
	ID int `gorm:"primaryKey;autoIncrement" json:"id"`
}
