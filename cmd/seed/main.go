package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"learnhub/internal/config"
	"learnhub/internal/domain/models"
	contentModels "learnhub/internal/domain/models/content"
	"learnhub/internal/repository/postgres"
	postgresContent "learnhub/internal/repository/postgres/content"
	"learnhub/internal/seed"
	serviceAuth "learnhub/internal/service/auth"
	serviceContent "learnhub/internal/service/content"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// defaultSeedUserID owns seeded content when -user is not given
const defaultSeedUserID = "00000000-0000-4000-8000-000000000001"

func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed content")
	clearData := flag.Bool("clear-data", false, "Clear all content and exit (keep schema)")
	catalogPath := flag.String("catalog", "", "Path to a YAML catalog (defaults to the embedded sample)")
	userID := flag.String("user", defaultSeedUserID, "User ID recorded as creator of seeded content")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.IsProduction() && (*dropTables || *clearData) {
		log.Fatalf("BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	if _, err := uuid.Parse(*userID); err != nil {
		log.Fatalf("Invalid -user %q: %v", *userID, err)
	}

	logger, logCloser, err := config.NewLogger(cfg, "seed")
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	log.Printf("Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := postgres.DropSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")

	if *schemaOnly {
		return
	}

	if *clearData {
		removed, err := postgres.ClearContents(ctx, pool, tables)
		if err != nil {
			log.Fatalf("Failed to clear content: %v", err)
		}
		log.Printf("Cleared %d content items", removed)
		return
	}

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	contentRepo := postgresContent.NewContentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool, logger)
	contentService := serviceContent.NewContentService(contentRepo, txManager, serviceAuth.NewRoleBasedAuthorizer(), logger)

	existing, err := contentService.ListContents(ctx, contentModels.Filter{})
	if err != nil {
		log.Fatalf("Failed to list existing content: %v", err)
	}
	pending := catalog.Missing(existing)
	log.Printf("%d of %d catalog items already present", len(catalog.Items)-len(pending.Items), len(catalog.Items))

	actor := models.Actor{UserID: *userID, Role: models.RoleAdmin}
	reqs := pending.Requests(actor)
	created := 0
	for i, req := range reqs {
		item, err := contentService.CreateContent(ctx, req)
		if err != nil {
			log.Printf("Failed to create %q: %v", req.Title, err)
			continue
		}
		created++
		log.Printf("Created %d/%d: %s / %s / %s / %s / %s (ID: %s)",
			i+1, len(reqs), item.Institute, item.Subject, item.Chapter, item.Topic, item.Title, item.ID)
	}

	items, err := contentService.ListContents(ctx, contentModels.Filter{})
	if err != nil {
		log.Fatalf("Failed to list content: %v", err)
	}

	roots := serviceContent.BuildHierarchy(items)
	rows := serviceContent.VisibleRows(roots, serviceContent.ExpandAll(roots))
	fmt.Fprintln(os.Stdout, serviceContent.NewTreeRenderer().Render(rows))

	log.Printf("Seeding complete: %d/%d items created", created, len(reqs))
}

func loadCatalog(path string) (*seed.Catalog, error) {
	if path == "" {
		return seed.DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.ParseCatalog(data)
}
