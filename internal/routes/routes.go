package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/handlers"
	"tourhub_backend/internal/middleware"
	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
)

// Deps is everything route registration needs besides the handlers.
type Deps struct {
	Protect     gin.HandlerFunc
	RateLimiter *middleware.RateLimiter
}

// RegisterRoutes wires the full /api/v1 surface.
func RegisterRoutes(engine *gin.Engine, h *handlers.AppHandlers, deps Deps) {
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api", deps.RateLimiter.Middleware())
	v1 := api.Group("/v1")

	registerUserRoutes(v1, h, deps.Protect)
	registerTourRoutes(v1, h, deps.Protect)
	registerReviewRoutes(v1, h, deps.Protect)
	registerBookingRoutes(v1, h, deps.Protect)
	registerChatRoutes(v1, h, deps.Protect)

	engine.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.NewNotFoundError("route", fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path)))
	})
}

func registerUserRoutes(v1 *gin.RouterGroup, h *handlers.AppHandlers, protect gin.HandlerFunc) {
	users := v1.Group("/users")

	users.POST("/signup", h.Auth.Signup)
	users.POST("/login", h.Auth.Login)
	users.GET("/logout", h.Auth.Logout)
	users.GET("/verifyEmail/:token", h.Auth.VerifyEmail)
	users.POST("/resendVerificationEmail", h.Auth.ResendVerificationEmail)
	users.POST("/forgotPassword", h.Auth.ForgotPassword)
	users.PATCH("/resetPassword/:token", h.Auth.ResetPassword)

	me := users.Group("", protect)
	me.PATCH("/updateMyPassword", h.Auth.UpdateMyPassword)
	me.GET("/me", h.User.Me)
	me.PATCH("/updateMe", h.User.UpdateMe)
	me.DELETE("/deleteMe", h.User.DeleteMe)

	admin := users.Group("", protect, middleware.RequireRoles(models.UserRoleAdmin))
	admin.GET("", h.User.GetAll)
	admin.POST("", h.User.CreateOne)
	admin.GET("/:id", h.User.GetOne)
	admin.PATCH("/:id", h.User.UpdateOne)
	admin.DELETE("/:id", h.User.DeleteOne)
}

func registerTourRoutes(v1 *gin.RouterGroup, h *handlers.AppHandlers, protect gin.HandlerFunc) {
	tours := v1.Group("/tours")

	tours.GET("", h.Tour.GetAll)
	tours.GET("/top-5-cheap", h.Tour.TopTours)
	tours.GET("/tour-stats", h.Tour.Stats)
	tours.GET("/monthly-plan/:year", protect,
		middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide, models.UserRoleGuide),
		h.Tour.MonthlyPlan)
	tours.GET("/:tourID", h.Tour.GetOne)

	manage := tours.Group("", protect, middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide))
	manage.POST("", h.Tour.CreateOne)
	manage.PATCH("/:tourID", h.Tour.UpdateOne)
	manage.DELETE("/:tourID", h.Tour.DeleteOne)
}

func registerReviewRoutes(v1 *gin.RouterGroup, h *handlers.AppHandlers, protect gin.HandlerFunc) {
	// Nested collection: reviews of one tour.
	nested := v1.Group("/tours/:tourID/reviews", protect)
	nested.GET("", h.Review.GetAll)
	nested.POST("", middleware.RequireRoles(models.UserRoleUser), h.Review.CreateOne)

	reviews := v1.Group("/reviews", protect)
	reviews.GET("", h.Review.GetAll)
	reviews.POST("", middleware.RequireRoles(models.UserRoleUser), h.Review.CreateOne)
	reviews.GET("/:id", h.Review.GetOne)

	moderate := reviews.Group("", middleware.RequireRoles(models.UserRoleUser, models.UserRoleAdmin))
	moderate.PATCH("/:id", h.Review.UpdateOne)
	moderate.DELETE("/:id", h.Review.DeleteOne)
}

func registerBookingRoutes(v1 *gin.RouterGroup, h *handlers.AppHandlers, protect gin.HandlerFunc) {
	bookings := v1.Group("/bookings", protect)

	bookings.GET("/checkoutSession/:tourID", h.Booking.CheckoutSession)
	bookings.GET("/myBookings", h.Booking.MyBookings)
	bookings.GET("/tempBookingMethod", h.Booking.RecordCheckout)

	manage := bookings.Group("", middleware.RequireRoles(models.UserRoleAdmin, models.UserRoleLeadGuide))
	manage.GET("", h.Booking.GetAll)
	manage.POST("", h.Booking.CreateOne)
	manage.GET("/:id", h.Booking.GetOne)
	manage.PATCH("/:id", h.Booking.UpdateOne)
	manage.DELETE("/:id", h.Booking.DeleteOne)
}

func registerChatRoutes(v1 *gin.RouterGroup, h *handlers.AppHandlers, protect gin.HandlerFunc) {
	chats := v1.Group("/chats", protect)
	chats.POST("", h.Chat.CreateChat)
	chats.GET("/chat/:firstID/:secondID", h.Chat.PairChat)
	chats.GET("/:userID", h.Chat.UserChats)

	messages := v1.Group("/messages", protect)
	messages.POST("", h.Chat.SendMessage)
	messages.GET("/:chatID", h.Chat.Messages)
}
