package models

import "time"

type Product struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"size:191;not null" json:"name"`
	Type            string     `gorm:"size:50;default:'product'" json:"type"`
	Category        string     `gorm:"size:100;index" json:"category"`
	Price           float64    `gorm:"type:decimal(15,2);not null" json:"price"`
	Quantity        int        `gorm:"not null;default:0" json:"quantity"`
	Unit            string     `gorm:"size:20;default:'unit'" json:"unit"`
	MinOrder        *int       `gorm:"column:min_order" json:"min_order,omitempty"`
	MaxOrder        *int       `gorm:"column:max_order" json:"max_order,omitempty"`
	ProductImages   *string    `gorm:"column:product_images;type:text" json:"product_images,omitempty"` // comma-separated object keys
	InStock         bool       `gorm:"column:in_stock;default:true" json:"in_stock"`
	Description     *string    `gorm:"type:text" json:"description,omitempty"`
	NutritionalInfo *string    `gorm:"column:nutritional_info;type:text" json:"nutritional_info,omitempty"`
	HarvestDate     *time.Time `gorm:"column:harvest_date" json:"harvest_date,omitempty"`
	ShelfLife       *string    `gorm:"column:shelf_life;size:100" json:"shelf_life,omitempty"`
	Farmer          *string    `gorm:"size:100" json:"farmer,omitempty"`
	Certifications  *string    `gorm:"type:text" json:"certifications,omitempty"`
	CreatedBy       int64      `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}
