package main

import (
	"time"

	"github.com/dinefront/internal/config"
	"github.com/dinefront/internal/constants"
	"github.com/dinefront/internal/logger"
	"github.com/dinefront/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 菜单项
	menuItems := []models.MenuItem{
		{
			RestaurantID:         1,
			Name:                 "Margherita Pizza",
			Category:             "mains",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(12.50)),
			Tags:                 models.StringArray{"vegetarian"},
			StockTrackingEnabled: true,
			StockQuantity:        40,
			LowStockThreshold:    5,
			IsActive:             true,
			SortOrder:            1,
		},
		{
			RestaurantID:         1,
			Name:                 "Grilled Salmon",
			Category:             "mains",
			Price:                models.NewMoneyFromDecimal(decimal.NewFromFloat(18.90)),
			StockTrackingEnabled: true,
			StockQuantity:        12,
			LowStockThreshold:    3,
			IsActive:             true,
			SortOrder:            2,
		},
		{
			RestaurantID: 1,
			Name:         "House Lemonade",
			Category:     "drinks",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(3.50)),
			IsActive:     true,
			SortOrder:    3,
		},
		{
			RestaurantID: 1,
			Name:         "Tiramisu",
			Category:     "desserts",
			Price:        models.NewMoneyFromDecimal(decimal.NewFromFloat(6.00)),
			IsActive:     true,
			SortOrder:    4,
		},
	}
	for i := range menuItems {
		if err := models.DB.Create(&menuItems[i]).Error; err != nil {
			stdLog.Fatalf("Failed to seed menu item: %v", err)
		}
	}

	// 示例订单
	pickup := time.Now().Add(30 * time.Minute)
	order := models.Order{
		OrderNo:             "DF-20260829-0001",
		RestaurantID:        1,
		CustomerName:        "Alex Chen",
		CustomerPhone:       "555-0137",
		Status:              constants.OrderStatusPending,
		Total:               models.NewMoneyFromDecimal(decimal.NewFromFloat(31.40)),
		PaymentMethod:       "card",
		PaymentStatus:       constants.ItemPaymentAlreadyPaid,
		EstimatedPickupTime: &pickup,
	}
	if err := models.DB.Create(&order).Error; err != nil {
		stdLog.Fatalf("Failed to seed order: %v", err)
	}
	items := []models.OrderItem{
		{
			OrderID:              order.ID,
			MenuItemID:           menuItems[0].ID,
			Name:                 menuItems[0].Name,
			Price:                menuItems[0].Price,
			Quantity:             2,
			PaymentStatus:        constants.ItemPaymentAlreadyPaid,
			StockTrackingEnabled: true,
			StockQuantity:        menuItems[0].StockQuantity,
			LowStockThreshold:    menuItems[0].LowStockThreshold,
		},
		{
			OrderID:       order.ID,
			MenuItemID:    menuItems[2].ID,
			Name:          menuItems[2].Name,
			Price:         menuItems[2].Price,
			Quantity:      2,
			PaymentStatus: constants.ItemPaymentAlreadyPaid,
		},
	}
	if err := models.DB.Create(&items).Error; err != nil {
		stdLog.Fatalf("Failed to seed order items: %v", err)
	}

	stdLog.Printf("Seed completed: %d menu items, 1 order", len(menuItems))
}
