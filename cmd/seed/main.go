package main

import (
	"context"
	"log"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/platform/database"
)

func intPtr(v int) *int { return &v }

// catalog is a small fixed set of well-known books.
var catalog = []book.Input{
	{Title: "Dune", Author: "Frank Herbert", Year: intPtr(1965)},
	{Title: "Foundation", Author: "Isaac Asimov", Year: intPtr(1951)},
	{Title: "I, Robot", Author: "Isaac Asimov", Year: intPtr(1950)},
	{Title: "Neuromancer", Author: "William Gibson", Year: intPtr(1984)},
	{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin", Year: intPtr(1969)},
	{Title: "The Dispossessed", Author: "Ursula K. Le Guin", Year: intPtr(1974)},
	{Title: "Hyperion", Author: "Dan Simmons", Year: intPtr(1989)},
	{Title: "Snow Crash", Author: "Neal Stephenson", Year: intPtr(1992)},
	{Title: "The Hobbit", Author: "J. R. R. Tolkien", Year: intPtr(1937)},
	{Title: "Brave New World", Author: "Aldous Huxley", Year: intPtr(1932)},
	{Title: "Fahrenheit 451", Author: "Ray Bradbury", Year: intPtr(1953)},
	{Title: "Solaris", Author: "Stanislaw Lem", Year: intPtr(1961)},
	{Title: "Roadside Picnic", Author: "Arkady and Boris Strugatsky", Year: intPtr(1972)},
	{Title: "Beowulf", Author: "Unknown"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("seeding needs a database driver (pgx or postgres)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	n, err := seed(ctx, book.NewService(book.NewPostgresRepo(db, cfg.DBTimeout)))
	if err != nil {
		log.Fatalf("seed failed after %d books: %v", n, err)
	}
	log.Printf("Seeded %d books", n)
}

// seed creates every catalog entry and returns how many were stored.
func seed(ctx context.Context, service *book.Service) (int, error) {
	for i, in := range catalog {
		b, err := service.Create(ctx, in)
		if err != nil {
			return i, err
		}
		log.Printf("seeded book id=%d title=%q", b.ID, b.Title)
	}
	return len(catalog), nil
}
