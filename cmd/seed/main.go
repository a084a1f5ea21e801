package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"okreads/internal/book"
	"okreads/internal/config"
	"okreads/internal/platform/openlibrary"
	"okreads/internal/readinglist"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	var (
		terms   = flag.String("terms", "javascript,dune,pride and prejudice", "Comma-separated search terms")
		perTerm = flag.Int("per-term", 3, "Books to add per term")
	)
	flag.Parse()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	catalog := book.NewOpenLibraryCatalog(openlibrary.NewClient(
		cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.UserAgent, cfg.OpenLibrary.RPS, cfg.OpenLibrary.MaxRetries,
	))
	service := readinglist.NewService(readinglist.NewPostgresRepo(pool, cfg.DBTimeout))

	added, err := seed(ctx, catalog, service, splitTerms(*terms), *perTerm)
	if err != nil {
		log.Printf("Seeding stopped early: %v", err)
	}
	log.Printf("Added %d books to the reading list", added)
	if err != nil {
		os.Exit(1)
	}
}

type adder interface {
	AddBook(ctx context.Context, b book.Book) (readinglist.Item, error)
}

// seed adds up to perTerm search results for every term. Books already on
// the list are skipped.
func seed(ctx context.Context, catalog book.Catalog, list adder, terms []string, perTerm int) (int, error) {
	added := 0
	for _, term := range terms {
		searchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		books, err := catalog.Search(searchCtx, term, perTerm)
		cancel()
		if err != nil {
			return added, err
		}
		for _, b := range books {
			if _, err := list.AddBook(ctx, b); err != nil {
				if errors.Is(err, readinglist.ErrAlreadyExists) {
					continue
				}
				return added, err
			}
			log.Printf("Added %q (%s)", b.Title, b.ID)
			added++
		}
	}
	return added, nil
}

func splitTerms(s string) []string {
	var terms []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
