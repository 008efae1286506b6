package main

import (
	"github.com/botanical-decor/shop-api/internal/config"
	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/logger"
	"github.com/botanical-decor/shop-api/internal/models"
)

type seedProduct struct {
	Name             string
	Category         string
	Price            float64
	DiscountPrice    float64 // 0 means not on sale
	Stock            int
	Description      string
	Colors           []string
	BunchesAvailable []int
	ImageURL         string
	Rating           float64
	IsFeatured       bool
	AdditionalInfo   map[string]interface{}
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	seeds := []seedProduct{
		{
			Name:             "Classic Red Rose Bouquet",
			Category:         constants.CategoryRoses,
			Price:            45.99,
			DiscountPrice:    29.50,
			Stock:            40,
			Description:      "A dozen long-stemmed red roses, hand-tied with eucalyptus.",
			Colors:           []string{"Red"},
			BunchesAvailable: []int{1, 2, 3},
			ImageURL:         "/uploads/product/2026/01/classic-red-roses.jpg",
			Rating:           4.8,
			IsFeatured:       true,
			AdditionalInfo:   map[string]interface{}{"vase_included": false, "stem_length_cm": 50},
		},
		{
			Name:             "Blush Pink Peonies",
			Category:         constants.CategoryPeonies,
			Price:            58.00,
			Stock:            25,
			Description:      "Seasonal peonies in soft blush, wrapped in kraft paper.",
			Colors:           []string{"Pink", "White"},
			BunchesAvailable: []int{1, 2},
			ImageURL:         "/uploads/product/2026/01/blush-peonies.jpg",
			Rating:           4.9,
			IsFeatured:       true,
			AdditionalInfo:   map[string]interface{}{"seasonal": true},
		},
		{
			Name:             "White Phalaenopsis Orchid",
			Category:         constants.CategoryOrchids,
			Price:            65.00,
			Stock:            15,
			Description:      "Twin-stem potted orchid in a ceramic planter.",
			Colors:           []string{"White"},
			BunchesAvailable: []int{1},
			ImageURL:         "/uploads/product/2026/01/white-orchid.jpg",
			Rating:           4.7,
			AdditionalInfo:   map[string]interface{}{"potted": true, "care_level": "moderate"},
		},
		{
			Name:             "Stargazer Lily Arrangement",
			Category:         constants.CategoryLilies,
			Price:            52.50,
			DiscountPrice:    44.00,
			Stock:            30,
			Description:      "Fragrant stargazer lilies with fern and baby's breath.",
			Colors:           []string{"Pink", "White"},
			BunchesAvailable: []int{1, 2},
			ImageURL:         "/uploads/product/2026/01/stargazer-lilies.jpg",
			Rating:           4.6,
		},
		{
			Name:             "Dutch Tulip Medley",
			Category:         constants.CategoryTulips,
			Price:            38.00,
			Stock:            60,
			Description:      "Twenty mixed tulips straight from the cooler.",
			Colors:           []string{"Yellow", "Red", "Purple"},
			BunchesAvailable: []int{1, 2, 4},
			ImageURL:         "/uploads/product/2026/01/dutch-tulips.jpg",
			Rating:           4.5,
			IsFeatured:       true,
		},
		{
			Name:             "Sunny Daisy Bunch",
			Category:         constants.CategoryDaisies,
			Price:            24.99,
			Stock:            80,
			Description:      "Cheerful gerbera daisies in a bright mix.",
			Colors:           []string{"Yellow", "Orange", "Pink"},
			BunchesAvailable: []int{1, 3, 5},
			ImageURL:         "/uploads/product/2026/01/sunny-daisies.jpg",
			Rating:           4.3,
		},
		{
			Name:             "Garden Party Mixed Bouquet",
			Category:         constants.CategoryMixed,
			Price:            72.00,
			DiscountPrice:    59.90,
			Stock:            20,
			Description:      "Roses, lisianthus and seasonal greens in a generous wrap.",
			Colors:           []string{"Pink", "Cream", "Green"},
			BunchesAvailable: []int{1},
			ImageURL:         "/uploads/product/2026/01/garden-party-mix.jpg",
			Rating:           4.9,
			IsFeatured:       true,
			AdditionalInfo:   map[string]interface{}{"vase_included": true},
		},
	}

	created, skipped := 0, 0
	for _, seed := range seeds {
		var existing models.Product
		err := models.DB.Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			skipped++
			stdLog.Printf("product already exists: %s", seed.Name)
			continue
		}

		product := models.Product{
			Name:             seed.Name,
			Category:         seed.Category,
			Price:            models.NewMoneyFromFloat(seed.Price),
			Stock:            seed.Stock,
			Description:      seed.Description,
			Colors:           models.StringArray(seed.Colors),
			BunchesAvailable: models.IntArray(seed.BunchesAvailable),
			ImageURL:         seed.ImageURL,
			Rating:           seed.Rating,
			IsFeatured:       seed.IsFeatured,
		}
		if seed.DiscountPrice > 0 {
			sale := models.NewMoneyFromFloat(seed.DiscountPrice)
			product.DiscountPrice = &sale
		}
		if seed.AdditionalInfo != nil {
			product.AdditionalInfo = models.JSON(seed.AdditionalInfo)
		}

		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("failed to create product %s: %v", seed.Name, err)
			continue
		}
		created++
		stdLog.Printf("created product: %s", seed.Name)
	}

	stdLog.Printf("seed complete: %d created, %d skipped", created, skipped)
}
