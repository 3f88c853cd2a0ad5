package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/walner-prog/mitienda-backend/internal/auth"
	"github.com/walner-prog/mitienda-backend/internal/customer"
	"github.com/walner-prog/mitienda-backend/internal/expense"
	"github.com/walner-prog/mitienda-backend/internal/inventory"
	"github.com/walner-prog/mitienda-backend/internal/product"
	"github.com/walner-prog/mitienda-backend/internal/reports"
	"github.com/walner-prog/mitienda-backend/internal/sale"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"github.com/walner-prog/mitienda-backend/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	authHandler := auth.NewHandler(db)
	r.POST("/usuarios/registro", authHandler.Register)
	r.POST("/usuarios/login", authHandler.Login)

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.GET("/usuarios/perfil", authHandler.Me)
		protected.PUT("/usuarios/perfil", authHandler.UpdateMe)

		admin := protected.Group("", middleware.AdminRequired())
		admin.GET("/usuarios", authHandler.ListUsers)
		admin.DELETE("/usuarios/:id", authHandler.DeleteUser)

		// Sales: the core engine
		saleHandler := sale.NewHandler(db)
		protected.POST("/ventas", saleHandler.Create)
		protected.GET("/ventas", saleHandler.List)
		protected.DELETE("/ventas/:id", saleHandler.Void)
		protected.POST("/ventas/:id/abonos", saleHandler.RegisterPayment)

		// Customers
		customerHandler := customer.NewHandler(db)
		protected.GET("/clientes", customerHandler.List)
		protected.POST("/clientes", customerHandler.Create)
		protected.GET("/clientes/credito", customerHandler.ListCredit)
		protected.GET("/clientes/deudores", customerHandler.ListDebtors)
		protected.GET("/clientes/:id", customerHandler.Get)
		protected.PUT("/clientes/:id", customerHandler.Update)
		protected.DELETE("/clientes/:id", customerHandler.Delete)

		// Products
		productHandler := product.NewHandler(db)
		protected.GET("/productos", productHandler.List)
		protected.POST("/productos", productHandler.Create)
		protected.GET("/productos/:id", productHandler.Get)
		protected.PUT("/productos/:id", productHandler.Update)

		// Inventory
		inventoryHandler := inventory.NewHandler(db)
		protected.GET("/inventario", inventoryHandler.List)
		protected.GET("/inventario/alertas", inventoryHandler.Alerts)
		protected.PUT("/inventario/:id/stock", inventoryHandler.AdjustStock)

		// Expenses
		expenseHandler := expense.NewHandler(db)
		protected.POST("/gastos", expenseHandler.Create)
		protected.GET("/gastos", expenseHandler.List)

		// Reports
		reportsHandler := reports.NewHandler(db)
		protected.GET("/reportes/ganancias", reportsHandler.GetProfit)
		protected.GET("/reportes/ventas/export", reportsHandler.ExportSales)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
