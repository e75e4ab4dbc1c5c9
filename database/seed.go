package database

import (
	"log"

	"game_marketplace/constants"
	"game_marketplace/model"
	"game_marketplace/utils"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin12345"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "admin12345"
	}
	users := []model.User{
		{Username: "Administration", Email: "admin@gamehub.local", Password: HashPassword, Role: constants.ROLE_SUPERUSER, Active: true},
	}

	for _, user := range users {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.User{Username: user.Username}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Username, "error:", err)
		}
	}

	currencies := []model.Currency{
		{Country: "Nigeria", Currency: "NGN", Rate: 1},
		{Country: "United States", Currency: "USD", Rate: 0.00065},
		{Country: "United Kingdom", Currency: "GBP", Rate: 0.00051},
	}
	for _, currency := range currencies {
		if err := db.Where(model.Currency{Currency: currency.Currency}).FirstOrCreate(&currency).Error; err != nil {
			log.Println("failed to seed currency:", currency.Currency, "error:", err)
		}
	}

	// options singleton: default currency = NGN
	var options model.Options
	if err := db.First(&options).Error; err == gorm.ErrRecordNotFound {
		var ngn model.Currency
		if err := db.Where(model.Currency{Currency: model.NativeCurrency}).First(&ngn).Error; err == nil {
			db.Create(&model.Options{CurrencyTitle: "Nigerian Naira", DefaultCurrencyId: ngn.ID})
		}
	}

	products := []model.Product{
		{Title: "PS5 DualSense Controller", Category: "Accessories", Condition: utils.Ptr("New"), Price: "84999.99", StockQty: 25, ImageUrls: []string{}},
		{Title: "Elden Ring PS5", Category: "Games", Subcategory: utils.Ptr("RPG"), Condition: utils.Ptr("New"), Price: "45000", StockQty: 40, ImageUrls: []string{}},
		{Title: "Xbox Series X Console", Category: "Consoles", Condition: utils.Ptr("Used"), Price: "520000", StockQty: 6, ImageUrls: []string{}},
	}
	for _, product := range products {
		product.Slug = slug.Make(product.Title)
		if err := db.Where(model.Product{Slug: product.Slug}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Title, "error:", err)
		}
	}

	downloads := []model.GameDownload{
		{Title: "FIFA 24 Digital", Platform: "PS5", Price: "30000", ImageUrls: []string{}},
	}
	for _, download := range downloads {
		if err := db.Where(model.GameDownload{Title: download.Title}).FirstOrCreate(&download).Error; err != nil {
			log.Println("failed to seed game download:", download.Title, "error:", err)
		}
	}

	rents := []model.GameRent{
		{Title: "God of War Ragnarok", Platform: "PS5", Price: "8000", Duration: "14 days", ImageUrls: []string{}},
	}
	for _, rent := range rents {
		if err := db.Where(model.GameRent{Title: rent.Title}).FirstOrCreate(&rent).Error; err != nil {
			log.Println("failed to seed game rent:", rent.Title, "error:", err)
		}
	}

	swaps := []model.GameSwap{
		{Title: "Spider-Man 2 swap slot", Platform: "PS5", Price: "5000", ImageUrls: []string{}},
	}
	for _, swap := range swaps {
		if err := db.Where(model.GameSwap{Title: swap.Title}).FirstOrCreate(&swap).Error; err != nil {
			log.Println("failed to seed game swap:", swap.Title, "error:", err)
		}
	}

	repairs := []model.GameRepair{
		{Device: "PS4 Pro HDMI repair", IssueDesc: "No display output", InspectionFee: utils.Ptr("2000"), Price: "15000"},
	}
	for _, repair := range repairs {
		if err := db.Where(model.GameRepair{Device: repair.Device}).FirstOrCreate(&repair).Error; err != nil {
			log.Println("failed to seed game repair:", repair.Device, "error:", err)
		}
	}

	log.Println("✅ Seed data ready")
}
