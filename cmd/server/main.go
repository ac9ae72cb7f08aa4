package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/mindsacademy/backend/internal/application/catalog"
	contentapp "github.com/mindsacademy/backend/internal/application/content"
	curriculumapp "github.com/mindsacademy/backend/internal/application/curriculum"
	identityapp "github.com/mindsacademy/backend/internal/application/identity"
	learningapp "github.com/mindsacademy/backend/internal/application/learning"
	"github.com/mindsacademy/backend/internal/domain/identity"
	"github.com/mindsacademy/backend/internal/infrastructure/auth"
	"github.com/mindsacademy/backend/internal/infrastructure/cache"
	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"github.com/mindsacademy/backend/internal/infrastructure/email"
	"github.com/mindsacademy/backend/internal/infrastructure/event"
	"github.com/mindsacademy/backend/internal/infrastructure/logger"
	"github.com/mindsacademy/backend/internal/infrastructure/persistence"
	"github.com/mindsacademy/backend/internal/infrastructure/storage"
	"github.com/mindsacademy/backend/internal/infrastructure/telemetry"
	"github.com/mindsacademy/backend/internal/interfaces/http/handler"
	"github.com/mindsacademy/backend/internal/interfaces/http/middleware"
	"github.com/mindsacademy/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/mindsacademy/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Minds Academy API
//	@version		1.0
//	@description	API da plataforma de ensino Minds Academy - cursos, trilhas de aprendizagem, matrículas, tarefas e artigos.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/mindsacademy/backend
//	@contact.email	suporte@mindsacademy.com.br

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Minds Academy Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize OpenTelemetry tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry metrics
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize continuous profiling
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Profiling.Enabled,
		ServerAddress:       cfg.Profiling.ServerAddress,
		ApplicationName:     cfg.Profiling.ApplicationName,
		BasicAuthUser:       cfg.Profiling.BasicAuthUser,
		BasicAuthPassword:   cfg.Profiling.BasicAuthPassword,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	// Attach database telemetry plugins
	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	if meterProvider.IsEnabled() {
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("database"), telemetry.DefaultDBMetricsConfig(), log)
		if err != nil {
			log.Warn("Failed to initialize database metrics", zap.Error(err))
		} else if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Warn("Failed to register database metrics plugin", zap.Error(err))
		}
	}

	// Redis backs the token blacklist and the article cache. When Redis is
	// not reachable the in-memory fallbacks keep a single instance working.
	var tokenBlacklist auth.TokenBlacklist
	var articleCache cache.ArticleCache
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-memory blacklist and cache", zap.Error(err))
			tokenBlacklist = auth.NewInMemoryTokenBlacklist()
			articleCache = cache.NewInMemoryArticleCache(10 * time.Minute)
		} else {
			tokenBlacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
			articleCache = cache.NewRedisArticleCache(redisClient, 10*time.Minute)
			log.Info("Redis connected successfully")
		}
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		articleCache = cache.NewInMemoryArticleCache(10 * time.Minute)
	}

	// Initialize repositories
	courseRepo := persistence.NewGormCourseRepository(db.DB)
	moduleRepo := persistence.NewGormModuleRepository(db.DB)
	lessonRepo := persistence.NewGormLessonRepository(db.DB)
	enrollmentRepo := persistence.NewGormEnrollmentRepository(db.DB)
	progressRepo := persistence.NewGormProgressRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	submissionRepo := persistence.NewGormSubmissionRepository(db.DB)
	pathRepo := persistence.NewGormPathRepository(db.DB)
	articleRepo := persistence.NewGormArticleRepository(db.DB)
	mediaRepo := persistence.NewGormMediaRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	platformStats := persistence.NewGormPlatformStats(db.DB)

	// Email sender for transactional notifications
	emailSender, err := email.NewSender(cfg.Email, log)
	if err != nil {
		log.Fatal("Failed to initialize email sender", zap.Error(err))
	}

	// Media object storage (S3-compatible); the stub keeps development
	// working without credentials
	var mediaStorage contentapp.MediaStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3MediaStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		mediaStorage = s3Storage
	} else {
		log.Warn("No storage bucket configured, using stub media storage")
		mediaStorage = storage.NewStubMediaStorage()
	}

	// Initialize application services
	courseService := catalogapp.NewCourseService(courseRepo, moduleRepo, lessonRepo)
	moduleService := catalogapp.NewModuleService(courseRepo, moduleRepo)
	lessonService := catalogapp.NewLessonService(courseRepo, moduleRepo, lessonRepo)
	enrollmentService := learningapp.NewEnrollmentService(enrollmentRepo, progressRepo, courseRepo, moduleRepo, lessonRepo)
	assignmentService := learningapp.NewAssignmentService(assignmentRepo, courseRepo, moduleRepo, lessonRepo)
	submissionService := learningapp.NewSubmissionService(submissionRepo, assignmentRepo, enrollmentRepo, courseRepo, moduleRepo, lessonRepo)
	pathService := curriculumapp.NewPathService(pathRepo, courseRepo)
	articleService := contentapp.NewArticleService(articleRepo)
	articleService.SetCache(articleCache)
	mediaService := contentapp.NewMediaService(mediaRepo, mediaStorage, cfg.Storage.MaxUploadSize)

	// Identity services (auth, user, role)
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, roleRepo, jwtService, tokenBlacklist, log)
	authService.SetEmailSender(emailSender, cfg.App.BaseURL)
	userService := identityapp.NewUserService(userRepo, roleRepo)
	roleService := identityapp.NewRoleService(roleRepo)

	// Seed the built-in roles before accepting traffic
	if err := roleService.EnsureDefaults(context.Background()); err != nil {
		log.Fatal("Failed to ensure default roles", zap.Error(err))
	}

	// Initialize event bus and handlers
	eventBus := event.NewAsyncEventBus(cfg.Event, log)

	// Register event handlers for cross-context notifications
	welcomeEmailHandler := identityapp.NewWelcomeEmailHandler(emailSender, log)
	eventBus.Subscribe(welcomeEmailHandler)

	enrollmentEmailHandler := learningapp.NewEnrollmentEmailHandler(userRepo, courseRepo, emailSender, log)
	eventBus.Subscribe(enrollmentEmailHandler)

	log.Info("Event handlers registered",
		zap.Strings("welcome_email_events", welcomeEmailHandler.EventTypes()),
		zap.Strings("enrollment_email_events", enrollmentEmailHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	courseService.SetEventPublisher(eventBus)
	enrollmentService.SetEventPublisher(eventBus)
	assignmentService.SetEventPublisher(eventBus)
	submissionService.SetEventPublisher(eventBus)
	pathService.SetEventPublisher(eventBus)
	articleService.SetEventPublisher(eventBus)
	authService.SetEventPublisher(eventBus)
	userService.SetEventPublisher(eventBus)

	// Learning platform metrics (active enrollments, published courses)
	if meterProvider.IsEnabled() {
		learningMetrics, err := telemetry.NewLearningMetrics(telemetry.LearningMetricsConfig{
			Meter:    meterProvider.Meter("learning"),
			Logger:   log,
			Provider: platformStats,
		})
		if err != nil {
			log.Warn("Failed to initialize learning metrics", zap.Error(err))
		} else {
			enrollmentService.SetLearningMetrics(learningMetrics)
			submissionService.SetLearningMetrics(learningMetrics)
			learningMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
		}
	}

	// Initialize HTTP handlers
	courseHandler := handler.NewCourseHandler(courseService)
	moduleHandler := handler.NewModuleHandler(moduleService)
	lessonHandler := handler.NewLessonHandler(lessonService)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	pathHandler := handler.NewPathHandler(pathService)
	articleHandler := handler.NewArticleHandler(articleService)
	mediaHandler := handler.NewMediaHandler(mediaService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, roleService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans
	// 5. Metrics - HTTP request metrics
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetricsWithMeter(meterProvider.Meter("http"), meterProvider.IsEnabled()))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint with access protection
	swaggerGroup := engine.Group("/swagger")
	swaggerGroup.Use(middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}, middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})))
	swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Legacy unversioned endpoints consumed by the public site. Their
	// response shapes predate the envelope and are preserved as-is.
	legacy := engine.Group("/api")
	legacy.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	legacy.GET("/articles/:slug", articleHandler.GetBySlugLegacy)
	legacy.GET("/learning-paths", pathHandler.ListLegacy)
	legacy.POST("/learning-paths", pathHandler.CreateLegacy)
	legacy.GET("/learning-paths/:pathId", pathHandler.GetLegacy)
	legacy.PATCH("/learning-paths/:pathId", pathHandler.UpdateLegacy)
	legacy.DELETE("/learning-paths/:pathId", pathHandler.DeleteLegacy)
	legacy.POST("/learning-paths/:pathId/courses", pathHandler.AddCourseLegacy)
	legacy.DELETE("/learning-paths/:pathId/courses/:courseId", pathHandler.RemoveCourseLegacy)
	legacy.PATCH("/learning-paths/:pathId/courses/reorder", pathHandler.ReorderLegacy)

	// Public auth endpoints, with a tighter rate limit to slow down
	// credential stuffing
	authPublic := engine.Group("/api/v1/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authPublic.Use(middleware.RateLimit(authLimiter))
	}
	authPublic.POST("/register", authHandler.Register)
	authPublic.POST("/login", authHandler.Login)
	authPublic.POST("/refresh", authHandler.Refresh)
	authPublic.POST("/forgot-password", authHandler.ForgotPassword)
	authPublic.POST("/reset-password", authHandler.ResetPassword)

	// Public catalog and content reads. Auth is optional here: anonymous
	// visitors see published material only, while owners, teachers and
	// admins see their drafts through the same endpoints.
	public := engine.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
	public.GET("/courses", courseHandler.List)
	public.GET("/courses/:id", courseHandler.GetByID)
	public.GET("/courses/:id/modules", moduleHandler.List)
	public.GET("/courses/:id/lessons", lessonHandler.ListByCourse)
	public.GET("/modules/:id/lessons", lessonHandler.List)
	public.GET("/lessons/:id", lessonHandler.GetByID)
	public.GET("/articles", articleHandler.ListPublished)
	public.GET("/articles/:slug", articleHandler.GetBySlug)
	public.GET("/articles/id/:id", articleHandler.GetByID)
	public.GET("/learning-paths", pathHandler.List)
	public.GET("/learning-paths/:id", pathHandler.GetByID)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to the remaining API routes
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Catalog domain (courses, modules, lessons) - authoring routes
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.POST("/courses", courseHandler.Create)
	catalogRoutes.GET("/courses/mine", courseHandler.ListMine)
	catalogRoutes.PUT("/courses/:id", courseHandler.Update)
	catalogRoutes.DELETE("/courses/:id", courseHandler.Delete)
	catalogRoutes.POST("/courses/:id/publish", courseHandler.Publish)
	catalogRoutes.POST("/courses/:id/unpublish", courseHandler.Unpublish)
	catalogRoutes.POST("/courses/:id/modules", moduleHandler.Create)
	catalogRoutes.PUT("/courses/:id/modules/reorder", moduleHandler.Reorder)
	catalogRoutes.PUT("/modules/:id", moduleHandler.Update)
	catalogRoutes.DELETE("/modules/:id", moduleHandler.Delete)
	catalogRoutes.POST("/modules/:id/lessons", lessonHandler.Create)
	catalogRoutes.PUT("/modules/:id/lessons/reorder", lessonHandler.Reorder)
	catalogRoutes.PUT("/lessons/:id", lessonHandler.Update)
	catalogRoutes.DELETE("/lessons/:id", lessonHandler.Delete)

	// Learning domain (enrollments, progress, assignments, submissions)
	learningRoutes := router.NewDomainGroup("learning", "")
	learningRoutes.POST("/courses/:id/enroll", enrollmentHandler.Enroll)
	learningRoutes.DELETE("/courses/:id/enroll", enrollmentHandler.Drop)
	learningRoutes.GET("/courses/:id/progress", enrollmentHandler.GetProgress)
	learningRoutes.GET("/courses/:id/enrollments", enrollmentHandler.ListByCourse)
	learningRoutes.GET("/enrollments/mine", enrollmentHandler.ListMine)
	learningRoutes.POST("/lessons/:id/complete", enrollmentHandler.CompleteLesson)
	learningRoutes.DELETE("/lessons/:id/complete", enrollmentHandler.UncompleteLesson)
	learningRoutes.POST("/lessons/:id/assignments", assignmentHandler.Create)
	learningRoutes.GET("/lessons/:id/assignments", assignmentHandler.ListByLesson)
	learningRoutes.GET("/assignments/:id", assignmentHandler.GetByID)
	learningRoutes.PUT("/assignments/:id", assignmentHandler.Update)
	learningRoutes.DELETE("/assignments/:id", assignmentHandler.Delete)
	learningRoutes.POST("/assignments/:id/submissions", submissionHandler.Submit)
	learningRoutes.GET("/assignments/:id/submissions", submissionHandler.ListByAssignment)
	learningRoutes.GET("/assignments/:id/submissions/mine", submissionHandler.GetMine)
	learningRoutes.GET("/submissions/mine", submissionHandler.ListMine)
	learningRoutes.POST("/submissions/:id/grade", submissionHandler.Grade)

	// Curriculum domain (learning paths)
	curriculumRoutes := router.NewDomainGroup("curriculum", "")
	curriculumRoutes.POST("/learning-paths", pathHandler.Create)
	curriculumRoutes.PUT("/learning-paths/:id", pathHandler.Update)
	curriculumRoutes.DELETE("/learning-paths/:id", pathHandler.Delete)
	curriculumRoutes.POST("/learning-paths/:id/courses", pathHandler.AddCourse)
	curriculumRoutes.DELETE("/learning-paths/:id/courses/:course_id", pathHandler.RemoveCourse)
	curriculumRoutes.PUT("/learning-paths/:id/courses/reorder", pathHandler.ReorderCourses)

	// Content domain (articles, media uploads)
	contentRoutes := router.NewDomainGroup("content", "")
	contentRoutes.POST("/articles", articleHandler.Create)
	contentRoutes.GET("/articles/manage", articleHandler.ListAll)
	contentRoutes.PUT("/articles/:id", articleHandler.Update)
	contentRoutes.DELETE("/articles/:id", articleHandler.Delete)
	contentRoutes.POST("/articles/:id/publish", articleHandler.Publish)
	contentRoutes.POST("/articles/:id/unpublish", articleHandler.Unpublish)
	contentRoutes.POST("/media/uploads", mediaHandler.RequestUpload)
	contentRoutes.POST("/media/uploads/confirm", mediaHandler.ConfirmUpload)
	contentRoutes.GET("/media/mine", mediaHandler.ListMine)
	contentRoutes.GET("/media/:id", mediaHandler.GetByID)
	contentRoutes.GET("/media/:id/download-url", mediaHandler.GetDownloadURL)
	contentRoutes.DELETE("/media/:id", mediaHandler.Delete)

	// Identity domain - protected routes
	identityRoutes := router.NewDomainGroup("identity", "")
	identityRoutes.POST("/auth/logout", authHandler.Logout)
	identityRoutes.GET("/auth/me", authHandler.Me)
	identityRoutes.PUT("/auth/change-password", authHandler.ChangePassword)
	identityRoutes.PUT("/users/me", userHandler.UpdateProfile)
	identityRoutes.GET("/users", userHandler.List)
	identityRoutes.GET("/users/:id", userHandler.GetByID)
	identityRoutes.DELETE("/users/:id", userHandler.Delete)
	identityRoutes.POST("/users/:id/activate", userHandler.Activate)
	identityRoutes.POST("/users/:id/deactivate", userHandler.Deactivate)
	identityRoutes.POST("/users/:id/roles", userHandler.AssignRole)
	identityRoutes.DELETE("/users/:id/roles/:role", userHandler.RemoveRole)
	identityRoutes.GET("/roles", userHandler.ListRoles)

	// Admin-only routes
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(middleware.RequireRoles(identity.RoleAdmin))
	adminRoutes.GET("/courses", courseHandler.ListAll)

	// Register all domain groups
	r.Register(catalogRoutes).
		Register(learningRoutes).
		Register(curriculumRoutes).
		Register(contentRoutes).
		Register(identityRoutes).
		Register(adminRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
