// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"taxibe/internal/auth"
	"taxibe/internal/bookings"
	"taxibe/internal/cooperatives"
	"taxibe/internal/notifications"
	"taxibe/internal/shared/config"
	"taxibe/internal/shared/database"
	"taxibe/internal/tickets"
	"taxibe/internal/trips"
	"taxibe/internal/vehicles"
	"taxibe/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer
}

// NewRouter creates a new router instance. The producer may be a
// notifications.NoopProducer when Kafka is disabled.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		cacheService := cache.NewService(r.db.GetRedis())
		pg := r.db.GetPostgreSQL()

		// Auth
		authRepo := auth.NewRepository(pg)
		authService := auth.NewService(authRepo, r.config)
		authRouter := auth.NewRouter(auth.NewController(authService), r.config)
		authRouter.SetupRoutes(api)

		// Cooperatives
		coopRepo := cooperatives.NewRepository(pg)
		coopService := cooperatives.NewService(coopRepo, r.config, cacheService)
		coopRouter := cooperatives.NewRouter(cooperatives.NewController(coopService), r.config)
		coopRouter.SetupPublicRoutes(api)

		// Vehicles
		vehicleRepo := vehicles.NewRepository(pg)
		vehicleService := vehicles.NewService(vehicleRepo, coopRepo, r.config)
		vehicleRouter := vehicles.NewRouter(vehicles.NewController(vehicleService), r.config)
		vehicleRouter.SetupPublicRoutes(api)

		// Bookings and tickets share the trip repository; the booking
		// service doubles as the reservation reader for trip views.
		tripRepo := trips.NewRepository(pg)
		ticketService := tickets.NewService(tickets.NewRepository(pg))
		bookingService := bookings.NewService(
			bookings.NewRepository(pg),
			tripRepo,
			ticketService,
			userDirectory{repo: authRepo},
			r.producer,
			r.config,
			cacheService,
		)
		bookingRouter := bookings.NewRouter(bookings.NewController(bookingService), r.config)
		bookingRouter.SetupRoutes(api)

		ticketRouter := tickets.NewRouter(tickets.NewController(ticketService), r.config)
		ticketRouter.SetupRoutes(api)

		// Trips
		tripService := trips.NewService(tripRepo, vehicleRepo, bookingService, r.config, cacheService)
		tripRouter := trips.NewRouter(trips.NewController(tripService), r.config)
		tripRouter.SetupPublicRoutes(api)

		// Admin surface
		admin := api.Group("/admin")
		{
			coopRouter.SetupAdminRoutes(admin)
			vehicleRouter.SetupAdminRoutes(admin)
			tripRouter.SetupAdminRoutes(admin)
		}
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "taxibe-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "taxibe-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// userDirectory adapts the auth repository to the phone lookup the
// booking service needs for SMS notifications.
type userDirectory struct {
	repo auth.Repository
}

func (d userDirectory) FindPhone(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := d.repo.GetUserByID(ctx, userID.String())
	if err != nil {
		return "", err
	}
	return user.Phone, nil
}
