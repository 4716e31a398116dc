package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cardfeed/internal/auth"
	"cardfeed/internal/comments"
	"cardfeed/internal/config"
	"cardfeed/internal/db"
	"cardfeed/internal/handlers"
	"cardfeed/internal/middleware"
	"cardfeed/internal/services"
	"cardfeed/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(conn)

	cache, err := utils.NewCache(1024)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	tokens := auth.NewManager(cfg.JWTSecret)
	commentStore := comments.NewStore(conn)
	market := services.NewMarketDataService(cache, cfg.MarketDataURL, cfg.MarketDataKey)
	network := services.NewContentNetworkService(cache, cfg.ContentNetURL, cfg.ContentUserAgent)

	// Initialize Gin
	r := gin.Default()

	// CORS，前端独立部署时需要携带 Cookie
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = false
	corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))

	// Middleware
	r.Use(middleware.LoadUser(conn, tokens))

	// Handlers
	authHandler := handlers.NewAuthHandler(conn, tokens)
	postHandler := handlers.NewPostHandler(conn, commentStore)
	channelHandler := handlers.NewChannelHandler(conn)
	commentHandler := handlers.NewCommentHandler(commentStore)
	tickerHandler := handlers.NewTickerHandler(conn, market)
	exploreHandler := handlers.NewExploreHandler(conn, network)

	// Public Routes
	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	r.GET("/posts", postHandler.List)
	r.GET("/posts/:pid", postHandler.Detail)
	r.GET("/channels", channelHandler.List)
	r.GET("/comments", commentHandler.List)
	r.GET("/explore/:feed", exploreHandler.Listing)
	r.GET("/tickers/:symbol/quote", tickerHandler.Quote)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/posts", postHandler.Create)
		authorized.DELETE("/posts/:pid", postHandler.Delete)
		authorized.POST("/channels", channelHandler.Create)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:commentId", commentHandler.Delete)

		authorized.GET("/tickers", tickerHandler.List)
		authorized.POST("/tickers", tickerHandler.Create)
		authorized.DELETE("/tickers/:symbol", tickerHandler.Delete)

		authorized.GET("/saved", exploreHandler.ListSaved)
		authorized.POST("/saved", exploreHandler.Save)
		authorized.DELETE("/saved/:id", exploreHandler.Unsave)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("cardfeed server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
