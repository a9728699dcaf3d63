package main

import (
	"tourhub_backend/internal/app"
	"tourhub_backend/internal/logger"
)

// @title        TourHub API
// @version      1.0
// @description  Tour booking backend: tours, reviews, bookings, chats.
// @BasePath     /api/v1
func main() {
	if err := app.Run(); err != nil {
		logger.Fatal("server exited", "error", err.Error())
	}
}
