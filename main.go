package main

import (
	"log"

	"tms/config"
	"tms/database"
	adminRoutes "tms/routers/adminRoutes"
	agencyRoutes "tms/routers/agencyRoutes"
	authRoutes "tms/routers/authRoutes"
	authorityRoutes "tms/routers/authorityRoutes"
	courseRoutes "tms/routers/courseRoutes"
	trainerRoutes "tms/routers/trainerRoutes"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)
	authorityRoutes.SetupAuthorityRoutes(app)
	trainerRoutes.SetupTrainerRoutes(app)
	agencyRoutes.SetupAgencyRoutes(app)

	utils.StartPendingDigestScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
