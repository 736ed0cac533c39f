package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"school-platform/internal/config"
	pg "school-platform/internal/infra/db/postgres"
	"school-platform/internal/infra/security"
	"school-platform/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := pg.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	contentKey := cfg.Security.ContentKey
	if len(contentKey) != 32 {
		contentKey = "0123456789abcdef0123456789abcdef"
	}
	cipher, err := security.NewContentCipher(contentKey)
	if err != nil {
		log.Fatalf("content cipher: %v", err)
	}

	bookRepo := pg.NewPostgresBookRepo(pool, cipher)
	codeRepo := pg.NewPostgresAccessCodeRepo(pool)
	catalogUC := usecase.NewCatalogUseCase(bookRepo, codeRepo)

	// If books already exist, do nothing
	books, err := catalogUC.List(ctx)
	if err != nil {
		log.Fatalf("list books: %v", err)
	}
	if len(books) > 0 {
		fmt.Printf("%d books already present. No changes.\n", len(books))
		for _, b := range books {
			fmt.Printf("  - %s / %s (price=%d IRR)\n", b.Subject, b.Title, b.PriceIRR)
		}
		return
	}

	// Seed a few sample titles for testing the redeem flow
	seed := []struct {
		Subject string
		Title   string
		URL     string
		Price   int64
	}{
		{"biology", "Cell Structure", "https://content.example.org/biology/cell-structure", 120_000},
		{"chemistry", "The Periodic Table", "https://content.example.org/chemistry/periodic-table", 150_000},
		{"physics", "Kinematics", "https://content.example.org/physics/kinematics", 135_000},
	}

	for _, s := range seed {
		b, err := catalogUC.Create(ctx, s.Subject, s.Title, "", s.URL, s.Price)
		if err != nil {
			log.Fatalf("create book %q: %v", s.Title, err)
		}
		codes, err := catalogUC.GenerateAccessCodes(ctx, b.ID, 3, nil)
		if err != nil {
			log.Fatalf("generate codes for %q: %v", s.Title, err)
		}
		fmt.Printf("seeded: %s / %s (id=%s)\n", b.Subject, b.Title, b.ID)
		for _, c := range codes {
			fmt.Printf("  code: %s\n", c)
		}
	}

	fmt.Println("Seeding complete.")
}
