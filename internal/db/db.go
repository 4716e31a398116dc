package db

import (
	"log"

	"cardfeed/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init 建立数据库连接并完成迁移，返回进程级唯一句柄
// 由 main 在启动时调用，句柄注入各组件，不再使用包级全局变量
func Init(dsn string) (*gorm.DB, error) {
	// TranslateError 把方言错误翻译成 gorm.ErrDuplicatedKey 等统一错误
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	// Seed initial channels
	seedChannels(conn)

	return conn, nil
}

// Migrate 执行自动迁移，测试用的内存库也走这里
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Post{},
		&models.Comment{},
		&models.Ticker{},
		&models.SavedItem{},
	)
}

// Close 关闭底层连接池，优雅退出时调用
func Close(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		log.Printf("Failed to get underlying sql.DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

func seedChannels(conn *gorm.DB) {
	// 检查是否已有频道数据
	var count int64
	conn.Model(&models.Channel{}).Count(&count)
	if count > 0 {
		log.Println("Channels already seeded, skipping")
		return
	}

	channels := []models.Channel{
		{Name: "general", Description: "General discussion"},
		{Name: "tech", Description: "Technology news and projects"},
		{Name: "markets", Description: "Stocks, tickers and market talk"},
		{Name: "media", Description: "Images and videos"},
	}

	for _, channel := range channels {
		if err := conn.Create(&channel).Error; err != nil {
			log.Printf("Failed to create channel %s: %v", channel.Name, err)
		}
	}
	log.Println("Initial channels created successfully")
}
