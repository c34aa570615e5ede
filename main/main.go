package main

import (
	"os"
	"time"

	"spotdrop/db"
	"spotdrop/main/routes"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again in "+time.Until(info.ResetTime).String())
}

func setupLogger(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Initialize the HTTP server
func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, using environment")
	}

	// Env Vars
	port := os.Getenv("PORT")
	if port == "" {
		port = ":5000"
	}
	dbName := os.Getenv("DB_FILE")
	if dbName == "" {
		dbName = "spotdrop.db"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	setupLogger(os.Getenv("LOG_LEVEL"))

	// Init DB
	if err := db.InitDB(dbName); err != nil {
		log.Fatal().Err(err).Msg("error opening database")
	}
	defer db.CloseDB()

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("error creating upload directory")
	}

	// Setup Gin
	r := gin.Default()

	// Rate Limit
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 100, // This makes it so each ip can only make 100 requests per second
	})

	mw := ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})

	r.Use(mw)
	r.Use(cors.Default())

	// Spot photos are served as plain static files
	r.Static("/uploads", uploadDir)

	routes.SetupAPIRoutes(r)

	log.Info().Str("port", port).Msg("starting server")
	if err := r.Run(port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
