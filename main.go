package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vichannnnn/holy-grail-sub001/handlers"
	"github.com/vichannnnn/holy-grail-sub001/initializers"
	"github.com/vichannnnn/holy-grail-sub001/middleware"
	"github.com/vichannnnn/holy-grail-sub001/pkg/notify"
	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/websocket"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := initializers.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if err := initializers.InitDefaults(db, cfg); err != nil {
		log.Fatal("Failed to initialize default data:", err)
	}
	if err := initializers.InitMinio(); err != nil {
		log.Fatal("Failed to initialize Minio:", err)
	}
	if err := initializers.InitRedis(cfg.RedisAddr); err != nil {
		log.Fatal("Failed to initialize Redis:", err)
	}

	if os.Getenv("GIN_MODE") == "release" || strings.ToLower(os.Getenv("APP_ENV")) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	usersRepo := repository.NewUsersRepository(db)
	notesRepo := repository.NewNotesRepository(db)
	taxonomyRepo := repository.NewTaxonomyRepository(db)
	favouritesRepo := repository.NewFavouritesRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}

	deps := routerDeps{
		hub:        hub,
		auth:       handlers.NewAuthHandler(usersRepo, cfg.JWTSecret),
		notes:      handlers.NewNotesHandler(notesRepo),
		taxonomy:   handlers.NewTaxonomyHandler(taxonomyRepo),
		admin:      handlers.NewAdminHandler(notesRepo, notifier),
		uploads:    handlers.NewUploadsHandler(notesRepo),
		favourites: handlers.NewFavouritesHandler(favouritesRepo, notesRepo),
		analytics:  handlers.NewAnalyticsHandler(analyticsRepo),
	}
	r := buildRouter(cfg, deps)

	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatal("Server error:", err)
	}
}

// routerDeps bundles everything buildRouter wires into the route table.
type routerDeps struct {
	hub        *websocket.Hub
	auth       *handlers.AuthHandler
	notes      *handlers.NotesHandler
	taxonomy   *handlers.TaxonomyHandler
	admin      *handlers.AdminHandler
	uploads    *handlers.UploadsHandler
	favourites *handlers.FavouritesHandler
	analytics  *handlers.AnalyticsHandler
}

func buildRouter(cfg initializers.Config, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLogger())
	r.Use(gin.Recovery())

	trustedProxies := os.Getenv("TRUSTED_PROXIES")
	if trustedProxies != "" {
		parts := strings.Split(trustedProxies, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := r.SetTrustedProxies(parts); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Public endpoints.
	r.GET("/health", handlers.HealthCheck)
	r.GET("/notes/approved", deps.notes.GetApprovedNotes)
	r.GET("/all_category_level", deps.taxonomy.GetCategories)
	r.GET("/all_document_type", deps.taxonomy.GetDocumentTypes)
	r.GET("/all_subjects", deps.taxonomy.GetSubjects)
	r.POST("/ad_analytics/ad_click", deps.analytics.AdClick)
	r.POST("/ad_analytics/ad_view", deps.analytics.AdView)

	// Credential endpoints get the stricter bucket.
	authPublic := r.Group("/", middleware.RateLimitAuth())
	authPublic.POST("/auth/create", deps.auth.Register)
	authPublic.POST("/auth/login", deps.auth.Login)
	authPublic.POST("/auth/send_reset_password_mail", deps.auth.SendResetPasswordMail)

	auth := r.Group("/", handlers.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/ws", websocket.ServeWS(deps.hub))

		auth.POST("/auth/update_email", deps.auth.UpdateEmail)
		auth.POST("/auth/update_password", deps.auth.UpdatePassword)
		auth.POST("/auth/resend_email_verification_token", deps.auth.ResendEmailVerificationToken)

		// /note/download/:id cannot coexist with /note/:id in the GET tree
		// (the router rejects a literal segment next to the :id wildcard),
		// so the two-segment form is matched generically and dispatched on
		// its first segment.
		auth.GET("/note/:id", deps.notes.GetNote)
		auth.GET("/note/:id/:sub", deps.notes.GetNoteSubroute)
		auth.DELETE("/note/:id", deps.admin.DeleteNote)
		auth.POST("/upload", deps.uploads.UploadNote)

		auth.POST("/favourites/add", deps.favourites.Add)
		auth.POST("/favourites/remove", deps.favourites.Remove)
		auth.GET("/favourites/", deps.favourites.List)
		auth.GET("/favourites/check/:id", deps.favourites.Check)

		admin := auth.Group("/", handlers.RequireAdmin())
		admin.GET("/notes/pending", deps.notes.GetPendingNotes)
		admin.PUT("/admin/approve/:id", deps.admin.ApproveNote)
		admin.GET("/ad_analytics/stats/:ad_id", deps.analytics.AdStats)
	}
	return r
}
