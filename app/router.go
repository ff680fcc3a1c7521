// Package app wires the HTTP surface: middleware chain, routes and
// the dependency container handed to every handler
package app

import (
	"fmt"
	"time"

	"eventify/event-api/app/category"
	"eventify/event-api/app/dashboard"
	"eventify/event-api/app/event"
	"eventify/event-api/app/root"
	"eventify/event-api/app/user"
	"eventify/event-api/db"
	"eventify/event-api/internal"
	"eventify/event-api/internal/policy"
	"eventify/event-api/internal/service"
	"eventify/event-api/internal/storage"
	"eventify/event-api/pkg/middleware"
	"eventify/event-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store persist.CacheStore

func NewRouter() (*gin.Engine, error) {
	d := &internal.Deps{}

	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	d.DB = database

	makeLogger()

	d.Argon = security.NewArgon()
	d.Tokens = security.NewActivationTokens(
		viper.GetString("jwt.secret"),
		viper.GetDuration("activation.max_age"),
	)
	d.Mailer = service.NewMailer()
	d.Bus = service.NewBus()
	d.RSVPs = service.NewRSVPLedger(database, d.Bus)

	service.RegisterHooks(d.Bus, database, d.Tokens, d.Mailer)

	if viper.GetString("aws.bucket") != "" {
		s3, err := storage.NewS3()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 client, %w", err)
		}
		d.S3 = s3
	} else {
		zap.L().Warn("No S3 bucket configured, event image uploads are disabled")
	}

	if addr := viper.GetString("cache.redis_addr"); addr != "" {
		store = persist.NewRedisStore(redis.NewClient(&redis.Options{Addr: addr}))
	} else {
		store = persist.NewMemoryStore(time.Minute)
	}

	router := gin.New()

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("host.cors"),
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("requestID", v))
				}

				if v, ok := c.Get("userID"); ok {
					fields = append(fields, zap.Any("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = 5 << 20

	auth := middleware.NewAuthMiddleware(database)

	rateLimit := viper.GetInt("security.rate_limit")
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
	})

	maxUploadSize := viper.GetInt64("upload.max_size")

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)
	}

	a := m.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/signup	-> Registers a new (inactive) account
		a.POST("/signup", func(c *gin.Context) { user.Signup(c, d) })

		// POST /api/auth/login		-> Logs in a user and sets the session cookie
		a.POST("/login", func(c *gin.Context) { user.Login(c, d) })

		// GET /api/auth/logout		-> Clears the session cookie
		a.GET("/logout", user.Logout)

		// GET /api/auth/activate/:id/:token -> Activates a pending account
		a.GET("/activate/:id/:token", func(c *gin.Context) { user.Activate(c, d) })

		// GET /api/auth/me		-> Returns the current user and role
		a.GET("/me", auth, user.Me)
	}

	manageEvents := middleware.RequirePermission(policy.ActionManageEvents)

	e := m.Group("/events")
	{
		// GET /api/events		-> Public listing with q/category/date/filter params
		e.GET("", cacheFor(15), func(c *gin.Context) { event.List(c, d) })

		// GET /api/events/:id		-> Public event detail
		e.GET("/:id", func(c *gin.Context) { event.Fetch(c, d) })

		// POST /api/events		-> Creates an event (Admin/Organizer)
		e.POST("", auth, manageEvents, middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { event.Create(c, d) })

		// PUT /api/events/:id		-> Updates an event (Admin/Organizer)
		e.PUT("/:id", auth, manageEvents, middleware.BodySizeLimiter(maxUploadSize), func(c *gin.Context) { event.Edit(c, d) })

		// DELETE /api/events/:id	-> Deletes an event (Admin/Organizer)
		e.DELETE("/:id", auth, manageEvents, func(c *gin.Context) { event.Delete(c, d) })

		// POST /api/events/:id/rsvp	-> RSVPs the current user
		e.POST("/:id/rsvp", auth, func(c *gin.Context) { event.RSVP(c, d) })

		// POST /api/events/:id/cancel-rsvp -> Removes the current user's RSVP
		e.POST("/:id/cancel-rsvp", auth, func(c *gin.Context) { event.CancelRSVP(c, d) })
	}

	manageCategories := middleware.RequirePermission(policy.ActionManageCategories)

	cg := m.Group("/categories")
	{
		// GET /api/categories		-> Public category listing
		cg.GET("", cacheFor(15), func(c *gin.Context) { category.List(c, d) })

		// GET /api/categories/:id	-> Public category detail with its events
		cg.GET("/:id", func(c *gin.Context) { category.Fetch(c, d) })

		// POST /api/categories		-> Creates a category (Admin/Organizer)
		cg.POST("", auth, manageCategories, func(c *gin.Context) { category.Create(c, d) })

		// PUT /api/categories/:id	-> Updates a category (Admin/Organizer)
		cg.PUT("/:id", auth, manageCategories, func(c *gin.Context) { category.Edit(c, d) })

		// DELETE /api/categories/:id	-> Deletes a category and its events
		cg.DELETE("/:id", auth, manageCategories, func(c *gin.Context) { category.Delete(c, d) })
	}

	dash := m.Group("/dashboard", auth)
	{
		// GET /api/dashboard		-> Role-resolved dashboard
		dash.GET("", func(c *gin.Context) { dashboard.Home(c, d) })

		// GET /api/dashboard/admin	-> Aggregate stats, Admin only
		dash.GET("/admin", middleware.RequirePermission(policy.ActionViewAdminDashboard), func(c *gin.Context) { dashboard.Admin(c, d) })

		// GET /api/dashboard/organizer	-> Aggregate stats, Organizer and up
		dash.GET("/organizer", middleware.RequirePermission(policy.ActionViewOrganizerDashboard), func(c *gin.Context) { dashboard.Organizer(c, d) })

		// GET /api/dashboard/participant -> The caller's RSVP'd events
		dash.GET("/participant", func(c *gin.Context) { dashboard.Participant(c, d) })
	}

	return router, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if level, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
