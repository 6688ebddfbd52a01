package routes

import (
	"net/http"

	"github.com/MrTch0o/APPUAIFOOD-sub000/configs"
	"github.com/MrTch0o/APPUAIFOOD-sub000/controllers"
	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/events"
	"github.com/MrTch0o/APPUAIFOOD-sub000/middlewares"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the route table needs. Hub may be nil, which disables /ws.
type Deps struct {
	DB     *gorm.DB
	Cfg    *configs.Config
	Log    *zap.Logger
	Events events.Publisher
	Hub    *ws.OrderHub
}

// NewRouter builds the engine with the shared middleware stack and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID(), middlewares.Logger(d.Log), middlewares.CORSMiddleware(d.Cfg.AllowOrigins))
	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	productRepo := repository.NewProductRepository(d.DB)
	addrRepo := repository.NewAddressRepository(d.DB)
	cartRepo := repository.NewCartRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)
	reviewRepo := repository.NewReviewRepository(d.DB)

	// Services
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL)
	userSvc := services.NewUserService(userRepo)
	restSvc := services.NewRestaurantService(restRepo)
	productSvc := services.NewProductService(productRepo, restRepo)
	addrSvc := services.NewAddressService(d.DB, addrRepo)
	cartSvc := services.NewCartService(d.DB, cartRepo, productRepo)
	orderSvc := services.NewOrderService(d.DB, orderRepo, cartRepo, productRepo, addrRepo, restRepo, reviewRepo, d.Events, d.Log)
	reviewSvc := services.NewReviewService(d.DB, reviewRepo, orderRepo, restRepo, d.Log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	adminCtrl := controllers.NewAdminController(userSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	productCtrl := controllers.NewProductController(productSvc)
	addrCtrl := controllers.NewAddressController(addrSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	secret := d.Cfg.JWTSecret
	authed := middlewares.AuthMiddleware(secret)
	optional := middlewares.OptionalAuth(secret)
	managers := middlewares.AuthMiddleware(secret, entity.RoleRestaurantOwner, entity.RoleAdmin)
	adminOnly := middlewares.AuthMiddleware(secret, entity.RoleAdmin)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", authed, authCtrl.Me)
		a.PATCH("/me", authed, authCtrl.UpdateMe)
	}

	// Users (admin only)
	users := r.Group("/users", adminOnly)
	{
		users.GET("", adminCtrl.ListUsers)
		users.GET("/:id", adminCtrl.GetUser)
		users.PATCH("/:id", adminCtrl.UpdateUser)
		users.DELETE("/:id", adminCtrl.DeleteUser)
	}

	// Restaurants
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/mine", managers, restCtrl.Mine)
	r.GET("/restaurants/:id", optional, restCtrl.Get)
	r.GET("/restaurants/:id/products", optional, productCtrl.ListByRestaurant)
	r.POST("/restaurants", managers, restCtrl.Create)
	r.PATCH("/restaurants/:id", managers, restCtrl.Update)
	r.DELETE("/restaurants/:id", managers, restCtrl.Delete)

	// Products
	r.GET("/products/:id", productCtrl.Get)
	p := r.Group("/products", managers)
	{
		p.POST("", productCtrl.Create)
		p.PATCH("/:id", productCtrl.Update)
		p.PATCH("/:id/availability", productCtrl.SetAvailability)
		p.DELETE("/:id", productCtrl.Delete)
	}

	// Addresses
	ad := r.Group("/addresses", authed)
	{
		ad.GET("", addrCtrl.List)
		ad.GET("/:id", addrCtrl.Get)
		ad.POST("", addrCtrl.Create)
		ad.PATCH("/:id", addrCtrl.Update)
		ad.PATCH("/:id/default", addrCtrl.SetDefault)
		ad.DELETE("/:id", addrCtrl.Delete)
	}

	// Cart
	cart := r.Group("/cart", authed)
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id", cartCtrl.UpdateQty)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
		cart.DELETE("/clear", cartCtrl.Clear)
	}

	// Orders
	o := r.Group("/orders", authed)
	{
		o.POST("", orderCtrl.Create)
		o.GET("", orderCtrl.List)
		o.GET("/restaurant/:id", orderCtrl.ListForRestaurant)
		o.GET("/restaurant/:id/export", orderCtrl.ExportForRestaurant)
		o.GET("/:id", orderCtrl.Detail)
		o.PATCH("/:id/status", orderCtrl.UpdateStatus)
	}
	r.DELETE("/orders/:id", adminOnly, orderCtrl.Purge)

	// Reviews
	r.GET("/reviews/restaurant/:id", reviewCtrl.ListForRestaurant)
	rv := r.Group("/reviews", authed)
	{
		rv.POST("", reviewCtrl.Create)
		rv.GET("/me", reviewCtrl.ListForMe)
		rv.PATCH("/:id", reviewCtrl.Update)
		rv.DELETE("/:id", reviewCtrl.Delete)
	}

	// Live order feed
	if d.Hub != nil {
		r.GET("/ws/orders", middlewares.WSAuthMiddleware(secret), d.Hub.HandleMyOrders)
		r.GET("/ws/restaurants/:id/orders",
			middlewares.WSAuthMiddleware(secret, entity.RoleRestaurantOwner, entity.RoleAdmin),
			d.Hub.HandleRestaurantOrders)
	}
}
