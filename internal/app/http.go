package app

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Certs365/auth-service/internal/auth/credentials"
	"github.com/Certs365/auth-service/internal/auth/handler"
	"github.com/Certs365/auth-service/internal/auth/provider"
	"github.com/Certs365/auth-service/internal/auth/provider/google"
	"github.com/Certs365/auth-service/internal/auth/provider/linkedin"
	"github.com/Certs365/auth-service/internal/auth/resolver"
	"github.com/Certs365/auth-service/internal/auth/token"
	"github.com/Certs365/auth-service/internal/config"
	"github.com/Certs365/auth-service/internal/mail"
	"github.com/Certs365/auth-service/internal/middleware"
	"github.com/Certs365/auth-service/internal/session"
	"github.com/Certs365/auth-service/internal/store"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func(ctx context.Context) error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	db := infra.Mongo.Database(cfg.MongoDatabase)
	users := store.NewMongoUsers(db)
	authRecords := store.NewMongoAuthRecords(db)

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	identityResolver := resolver.NewStoreResolver(users, authRecords)

	var mailer mail.Mailer = mail.Noop{}
	if cfg.OTPMailEnabled {
		mailer, err = mail.NewSMTP(mail.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	credentialService := credentials.NewService(users, authRecords, mailer, cfg.OTPMailEnabled)

	tokens, err := token.NewIssuer(cfg.AccessTokenSecret, cfg.JWTExpire, cfg.JWTExpireUnit)
	if err != nil {
		return nil, nil, err
	}

	googleProvider, err := google.New(
		ctx,
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleCallbackURL,
	)
	if err != nil {
		return nil, nil, err
	}

	linkedinProvider, err := linkedin.New(
		cfg.LinkedInClientID,
		cfg.LinkedInClientSecret,
		cfg.LinkedInCallbackURL,
	)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(
		googleProvider,
		linkedinProvider,
	)

	authHandler := handler.NewHandler(
		registry,
		sessionStore,
		identityResolver,
		credentialService,
		users,
		tokens,
		infra.Mongo.Healthy,
		infra.Redis.Healthy,
	)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore, "/login")

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinRequestLog())

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	// ----------------------------
	// Protected Web Routes
	// ----------------------------

	web := router.Group("/")
	web.Use(middleware.GinRequireSession(authMiddleware))

	web.GET("/home", authHandler.Home)

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireBearer(tokens))

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func(ctx context.Context) error {
		return infra.Mongo.Close(ctx)
	}, nil
}
