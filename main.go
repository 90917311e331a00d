package main

import (
	"fmt"
	"os"

	"ruha/config"
	"ruha/database"
	"ruha/logger"
	"ruha/routers"
	"ruha/utils"

	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	config.LoadConfig()
	if err := logger.Init(config.AppConfig.LogMode); err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer logger.Log.Sync()

	database.ConnectDb()
	database.InitRedis()

	app := routers.NewApp(config.AppConfig)

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	app.Static("/uploads", config.AppConfig.UploadDir)
	routers.SetupRoutes(app)

	if config.AppConfig.EnableScheduler {
		scheduler := utils.InitializeEventScheduler()
		defer scheduler.Stop()
	}

	logger.Log.Info("Server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		logger.Log.Fatal("Server stopped", "error", err)
	}
}
