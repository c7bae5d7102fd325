package router

import (
	"github.com/muss3ab/tsh/internal/handlers"
	"github.com/muss3ab/tsh/internal/middleware"
	"github.com/muss3ab/tsh/internal/service"

	"github.com/gin-contrib/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the HTTP layer needs.
type Deps struct {
	Auth     *service.AuthService
	Catalog  service.CatalogService
	Cart     service.CartService
	Orders   service.OrderService
	Wishlist service.WishlistService
	Tokens   service.TokenProvider
	Log      *zap.Logger
}

func Router(d Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler := handlers.NewAuthHandler(d.Auth, d.Log)
	catalogHandler := handlers.NewCatalogHandler(d.Catalog, d.Log)
	cartHandler := handlers.NewCartHandler(d.Cart, d.Orders, d.Log)
	orderHandler := handlers.NewOrderHandler(d.Orders, d.Log)
	wishlistHandler := handlers.NewWishlistHandler(d.Wishlist, d.Log)
	adminHandler := handlers.NewAdminHandler(d.Catalog, d.Log)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:id", catalogHandler.GetProduct)
		api.GET("/categories", catalogHandler.CategoryTree)

		authed := api.Group("")
		authed.Use(middleware.AuthRequired(d.Tokens, d.Auth, d.Log))
		{
			authed.POST("/logout", authHandler.Logout)
			authed.GET("/user", authHandler.CurrentUser)

			authed.GET("/cart", cartHandler.GetCart)
			authed.POST("/cart", cartHandler.AddItem)
			authed.PATCH("/cart/:itemId", cartHandler.UpdateItem)
			authed.DELETE("/cart/:itemId", cartHandler.RemoveItem)
			authed.POST("/checkout", cartHandler.Checkout)

			authed.GET("/wishlist", wishlistHandler.List)
			authed.POST("/wishlist", wishlistHandler.Add)
			authed.DELETE("/wishlist/:productId", wishlistHandler.Remove)

			authed.GET("/orders", orderHandler.ListOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)

			admin := authed.Group("/admin")
			admin.Use(middleware.AdminRequired())
			{
				admin.GET("/products", adminHandler.ListProducts)
				admin.POST("/products", adminHandler.CreateProduct)
				admin.PATCH("/products/:id", adminHandler.UpdateProduct)
				admin.DELETE("/products/:id", adminHandler.DeleteProduct)

				admin.GET("/categories", adminHandler.ListCategories)
				admin.POST("/categories", adminHandler.CreateCategory)
				admin.PATCH("/categories/:id", adminHandler.UpdateCategory)
				admin.DELETE("/categories/:id", adminHandler.DeleteCategory)
			}
		}
	}

	return r
}
