package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/boobalan-mca23/jeevagold/config"
	"github.com/boobalan-mca23/jeevagold/internal/handler"
	"github.com/boobalan-mca23/jeevagold/internal/middleware"
	"github.com/boobalan-mca23/jeevagold/internal/models"
	"github.com/boobalan-mca23/jeevagold/pkg/database"
)

func main() {
	// Weights and amounts serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	config.LoadConfig()
	database.Connect()

	log.Println("Running migrations...")
	err := database.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Transaction{},
		&models.Goldsmith{},
		&models.MasterItem{},
		&models.Bill{},
		&models.BillItem{},
		&models.ReceivedDetail{},
		&models.Entry{},
		&models.Expense{},
		&models.CoinStock{},
		&models.StockLog{},
		&models.JewelStock{},
		&models.JobCard{},
		&models.JobCardItem{},
		&models.AdditionalWeight{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations completed.")

	database.SeedAdmin()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handler.AuthHandler{}
	authRoutes := r.Group("/api/v1/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)
	}

	userRoutes := r.Group("/api/v1/user")
	userRoutes.Use(middleware.AuthMiddleware())
	{
		userRoutes.PUT("/password", authHandler.ChangePassword)
	}

	customerHandler := &handler.CustomerHandler{}
	customerRoutes := r.Group("/api/v1/customers")
	customerRoutes.Use(middleware.AuthMiddleware())
	{
		customerRoutes.POST("", customerHandler.Create)
		customerRoutes.GET("", customerHandler.List)
		customerRoutes.GET("/:id", customerHandler.Get)
		customerRoutes.PUT("/:id", customerHandler.Update)
		customerRoutes.DELETE("/:id", customerHandler.Delete)
	}

	goldsmithHandler := &handler.GoldsmithHandler{}
	goldsmithRoutes := r.Group("/api/v1/goldsmiths")
	goldsmithRoutes.Use(middleware.AuthMiddleware())
	{
		goldsmithRoutes.POST("", goldsmithHandler.Create)
		goldsmithRoutes.GET("", goldsmithHandler.List)
		goldsmithRoutes.PUT("/:id", goldsmithHandler.Update)
		goldsmithRoutes.DELETE("/:id", goldsmithHandler.Delete)
	}

	masterItemHandler := &handler.MasterItemHandler{}
	masterItemRoutes := r.Group("/api/v1/master-items")
	masterItemRoutes.Use(middleware.AuthMiddleware())
	{
		masterItemRoutes.POST("", masterItemHandler.Create)
		masterItemRoutes.GET("", masterItemHandler.List)
		masterItemRoutes.PUT("/:id", masterItemHandler.Update)
		masterItemRoutes.DELETE("/:id", masterItemHandler.Delete)
	}

	stockHandler := &handler.StockHandler{}
	stockRoutes := r.Group("/api/v1/stocks")
	stockRoutes.Use(middleware.AuthMiddleware())
	{
		stockRoutes.POST("", stockHandler.Upsert)
		stockRoutes.GET("", stockHandler.List)
		stockRoutes.POST("/add", stockHandler.Add)
		stockRoutes.POST("/reduce", stockHandler.Reduce)
		stockRoutes.GET("/logs", stockHandler.Logs)
		stockRoutes.PUT("/:id", stockHandler.Update)
		stockRoutes.DELETE("/:id", stockHandler.Delete)
	}

	jewelHandler := &handler.JewelStockHandler{}
	jewelRoutes := r.Group("/api/v1/jewel-stock")
	jewelRoutes.Use(middleware.AuthMiddleware())
	{
		jewelRoutes.POST("", jewelHandler.Create)
		jewelRoutes.GET("", jewelHandler.List)
		jewelRoutes.PUT("/:id", jewelHandler.Update)
		jewelRoutes.DELETE("/:id", jewelHandler.Delete)
	}

	jobCardHandler := &handler.JobCardHandler{}
	jobCardRoutes := r.Group("/api/v1/job-cards")
	jobCardRoutes.Use(middleware.AuthMiddleware())
	{
		jobCardRoutes.POST("", jobCardHandler.Create)
		jobCardRoutes.GET("", jobCardHandler.List)
		jobCardRoutes.GET("/:id", jobCardHandler.Get)
		jobCardRoutes.POST("/:id/items", jobCardHandler.AppendItems)
		jobCardRoutes.DELETE("/:id", jobCardHandler.Delete)
		jobCardRoutes.PUT("/:id/items/:itemId/deliver", jobCardHandler.Deliver)
		jobCardRoutes.POST("/:id/items/:itemId/weights", jobCardHandler.AddWeight)
	}

	billingHandler := &handler.BillingHandler{}
	billRoutes := r.Group("/api/v1/bills")
	billRoutes.Use(middleware.AuthMiddleware())
	{
		billRoutes.POST("", billingHandler.CreateBill)
		billRoutes.GET("", billingHandler.ListBills)
		billRoutes.GET("/:id", billingHandler.GetBill)
		billRoutes.DELETE("/:id", billingHandler.DeleteBill)
		billRoutes.POST("/:id/receive", billingHandler.Receive)
		billRoutes.GET("/:id/balances", billingHandler.Balances)
		billRoutes.GET("/:id/print", billingHandler.Print)
	}

	transactionHandler := &handler.TransactionHandler{}
	transactionRoutes := r.Group("/api/v1/transactions")
	transactionRoutes.Use(middleware.AuthMiddleware())
	{
		transactionRoutes.POST("", transactionHandler.Create)
		transactionRoutes.GET("", transactionHandler.List)
		transactionRoutes.PUT("/:id", transactionHandler.Update)
		transactionRoutes.DELETE("/:id", transactionHandler.Delete)
	}

	entryHandler := &handler.EntryHandler{}
	entryRoutes := r.Group("/api/v1/entries")
	entryRoutes.Use(middleware.AuthMiddleware())
	{
		entryRoutes.POST("", entryHandler.Create)
		entryRoutes.GET("", entryHandler.List)
		entryRoutes.PUT("/:id", entryHandler.Update)
		entryRoutes.DELETE("/:id", entryHandler.Delete)
	}

	expenseHandler := &handler.ExpenseHandler{}
	expenseRoutes := r.Group("/api/v1/expenses")
	expenseRoutes.Use(middleware.AuthMiddleware())
	{
		expenseRoutes.POST("", expenseHandler.Create)
		expenseRoutes.GET("", expenseHandler.List)
		expenseRoutes.GET("/summary", expenseHandler.Summary)
		expenseRoutes.PUT("/:id", expenseHandler.Update)
		expenseRoutes.DELETE("/:id", expenseHandler.Delete)
	}

	reportHandler := &handler.ReportHandler{}
	reportRoutes := r.Group("/api/v1/reports")
	reportRoutes.Use(middleware.AuthMiddleware())
	{
		reportRoutes.GET("/daily", reportHandler.Daily)
		reportRoutes.GET("/customers/:id", reportHandler.Customer)
		reportRoutes.GET("/balance", reportHandler.Balance)
		reportRoutes.GET("/advance", reportHandler.Advance)
		reportRoutes.GET("/overall", reportHandler.Overall)
	}

	publicHandler := &handler.PublicHandler{}
	r.GET("/api/v1/public/shop-info", publicHandler.GetShopInfo)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	port := config.AppConfig.Server.Port
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
