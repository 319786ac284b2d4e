package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Username     string    `gorm:"unique;not null"          json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null"                 json:"role"`
}

// Product keeps the Indonesian column and wire names of the inventory schema
// (nama_produk, harga_satuan).
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	Name      string    `gorm:"column:nama_produk;not null"  json:"nama_produk"`
	UnitPrice float64   `gorm:"column:harga_satuan;not null" json:"harga_satuan"`
	Quantity  int64     `gorm:"column:quantity;not null"     json:"quantity"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
