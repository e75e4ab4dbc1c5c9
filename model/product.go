package model

// Product là sản phẩm shop (đĩa game, console, phụ kiện...).
// Giá lưu decimal string theo đơn vị NGN, convert lúc đọc.
type Product struct {
	DTO
	Title       string   `json:"title" validate:"required"`
	Slug        string   `gorm:"unique" json:"slug"`
	Category    string   `json:"category" validate:"required"`
	Subcategory *string  `json:"subcategory,omitempty"`
	Desc        string   `json:"desc"`
	ImageUrls   []string `gorm:"serializer:json;type:jsonb" json:"imageUrls"`
	Condition   *string  `json:"condition,omitempty"` // New | Used
	Price       string   `json:"price" validate:"required"`
	StockQty    int      `json:"stockQty"`
}

func (Product) TableName() string { return "products" }

type CreateProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Subcategory *string  `json:"subcategory"`
	Desc        string   `json:"desc"`
	ImageUrls   []string `json:"imageUrls"`
	Condition   *string  `json:"condition"`
	Price       string   `json:"price" validate:"required"`
	StockQty    int      `json:"stockQty" validate:"gte=0"`
}
