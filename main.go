package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/partyup/matchmaking_backend/catalog"
	"github.com/partyup/matchmaking_backend/controllers"
	"github.com/partyup/matchmaking_backend/database"
	"github.com/partyup/matchmaking_backend/docs"
	"github.com/partyup/matchmaking_backend/middleware"
	"github.com/partyup/matchmaking_backend/services"
	"github.com/partyup/matchmaking_backend/utils"
	"github.com/partyup/matchmaking_backend/websocket"
)

// @title           Party Up API
// @version         1.0
// @description     Matchmaking backend for multiplayer game parties
// @host            localhost:8080
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger, err := utils.InitLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Initialize database
	if err := database.Connect(logger); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Static game reference data, loaded once for the process lifetime
	gameCatalog := catalog.Load()

	// Broadcast gateway
	hub := websocket.NewHub(sugar)
	go hub.Run()

	// Services
	parties := &services.PartyService{
		DB:      database.DB,
		Logger:  sugar,
		Catalog: gameCatalog,
		Hub:     hub,
	}
	spots := &services.SpotService{
		DB:      database.DB,
		Logger:  sugar,
		Parties: parties,
		Hub:     hub,
	}
	messages := &services.MessageService{
		DB:     database.DB,
		Logger: sugar,
		Hub:    hub,
	}

	env := &controllers.Env{
		Parties:  parties,
		Spots:    spots,
		Messages: messages,
		Logger:   sugar,
	}
	ws := &websocket.Handler{
		Hub:      hub,
		Parties:  parties,
		Messages: messages,
		Logger:   sugar,
	}

	// Daily cleanup of abandoned parties
	cleaner := utils.CronCleaner(parties, logger)
	defer cleaner.Stop()

	// Set up Swagger info
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}

	// Set up router
	router := gin.Default()
	router.Use(utils.RequestLogger(logger))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Authentication routes
	auth := router.Group("/api")
	{
		auth.POST("/register", env.Register)
		auth.POST("/login", env.Login)
		auth.GET("/games", env.GetGames)
	}

	// Protected routes
	api := router.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		// Party routes
		api.GET("/parties", env.ListGameParties)
		api.POST("/parties", env.CreateParty)
		api.GET("/parties/:id", env.GetParty)
		api.PUT("/parties/:id", env.UpdateParty)
		api.DELETE("/parties/:id", env.DeleteParty)

		// Spot routes
		api.PATCH("/spots/:id", env.ClaimSpot)
		api.DELETE("/spots/:id", env.LeaveSpot)

		// Message routes
		api.GET("/parties/:id/messages", env.GetMessages)
		api.POST("/parties/:id/messages", env.CreateMessage)
		api.PUT("/messages/:id", env.UpdateMessage)
		api.DELETE("/messages/:id", env.DeleteMessage)
	}

	// WebSocket route
	router.GET("/ws", ws.HandleConnection)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
