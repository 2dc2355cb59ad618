package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/hackernews/pkg/hackernews/auth"
	"github.com/mikepea/hackernews/pkg/hackernews/config"
	"github.com/mikepea/hackernews/pkg/hackernews/database"
	"github.com/mikepea/hackernews/pkg/hackernews/graph"
	"github.com/mikepea/hackernews/pkg/hackernews/models"
	"github.com/mikepea/hackernews/pkg/hackernews/server"
	"github.com/mikepea/hackernews/pkg/hackernews/store"
)

// @title Hackernews API
// @version 1.0
// @description A GraphQL API for sharing links, voting and browsing the feed.

// @contact.name Hackernews Support
// @contact.url https://github.com/mikepea/hackernews

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token. Format: "Bearer {token}"

func main() {
	// Environment first, then an optional .env in the working directory
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration: %s", cfg)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	st := store.New(db)
	if cfg.SeedDemo {
		if err := seedDemoLink(context.Background(), st); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	dec := auth.NewDecoder([]byte(cfg.JWTSecret), cfg.TokenTTL)
	schema, err := graph.NewSchema(dec)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	r := server.NewRouter(schema, st, dec, gin.Logger(), gin.Recovery())

	log.Printf("Starting Hackernews server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedDemoLink creates the demo link when the feed is empty
func seedDemoLink(ctx context.Context, st *store.Store) error {
	count, err := st.CountLinks(ctx, "")
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Feed already has links
	}

	link, err := st.CreateLink(ctx, store.NewLink{
		Description: "Fullstack tutorial for Graphql",
		URL:         "www.ebonyishops.com",
	})
	if err != nil {
		return err
	}

	log.Printf("Created demo link: %s (ID: %d)", link.URL, link.ID)
	return nil
}
