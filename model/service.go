package model

// Các collection dịch vụ game. Tên bảng cố định theo allow-list của
// đơn dịch vụ: gamedownloads, gamerents, gameswaps, gamerepairs.

type GameDownload struct {
	DTO
	Title     string   `json:"title" validate:"required"`
	Platform  string   `json:"platform"`
	ImageUrls []string `gorm:"serializer:json;type:jsonb" json:"imageUrls"`
	Price     string   `json:"price" validate:"required"`
}

func (GameDownload) TableName() string { return "gamedownloads" }

type GameRent struct {
	DTO
	Title     string   `json:"title" validate:"required"`
	Platform  string   `json:"platform"`
	ImageUrls []string `gorm:"serializer:json;type:jsonb" json:"imageUrls"`
	Price     string   `json:"price" validate:"required"` // giá thuê theo kỳ
	Duration  string   `json:"duration"`
}

func (GameRent) TableName() string { return "gamerents" }

type GameSwap struct {
	DTO
	Title     string   `json:"title" validate:"required"`
	Platform  string   `json:"platform"`
	ImageUrls []string `gorm:"serializer:json;type:jsonb" json:"imageUrls"`
	Price     string   `json:"price" validate:"required"` // phí swap
}

func (GameSwap) TableName() string { return "gameswaps" }

type GameRepair struct {
	DTO
	Device        string  `json:"device" validate:"required"`
	IssueDesc     string  `json:"issueDesc"`
	InspectionFee *string `json:"inspectionFee,omitempty"`
	Price         string  `json:"price"` // báo giá sau khi inspect
}

func (GameRepair) TableName() string { return "gamerepairs" }
