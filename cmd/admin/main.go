package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complainthub/backend/internal/complaint"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/logging"
	"complainthub/backend/internal/models"
	"complainthub/backend/internal/storage"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	repo := complaint.NewRepository(store, logging.Default("admin"))

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <list|resolve|seed|stats> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		status := ""
		if len(os.Args) > 2 {
			status = os.Args[2]
		}
		if err := listComplaints(ctx, repo, status); err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
	case "resolve":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin resolve <complaint_id> <response>")
			os.Exit(1)
		}
		id, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid complaint ID. Please provide an integer.")
			os.Exit(1)
		}
		response := strings.Join(os.Args[3:], " ")
		if err := resolveComplaint(ctx, repo, id, response); err != nil {
			log.Fatalf("Error resolving complaint: %v", err)
		}
		fmt.Printf("Complaint %d has been resolved.\n", id)
	case "seed":
		if err := complaint.SeedSampleData(ctx, store, logging.Default("admin")); err != nil {
			log.Fatalf("Error seeding sample data: %v", err)
		}
		fmt.Println("Sample data seeded.")
	case "stats":
		complaints, err := repo.List(ctx)
		if err != nil {
			log.Fatalf("Error loading complaints: %v", err)
		}
		st := complaint.Summarize(complaints)
		fmt.Printf("total=%d pending=%d resolved=%d rate=%d%%\n", st.Total, st.Pending, st.Resolved, st.ResolutionRate)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func openStore(ctx context.Context, cfg config.Config) (*storage.Store, error) {
	logger := logging.Default("admin")

	if cfg.StorageBackend == "postgres" {
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		kv, err := storage.NewGormKV(db)
		if err != nil {
			return nil, err
		}
		return storage.NewStore(kv, logger), nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return storage.NewStore(storage.NewRedisKV(rdb), logger), nil
}

func listComplaints(ctx context.Context, repo *complaint.Repository, status string) error {
	complaints, err := repo.List(ctx)
	if err != nil {
		return err
	}
	crit := complaint.Criteria{Status: models.ComplaintStatus(status), Sort: complaint.SortNewest}
	for _, c := range complaint.Apply(complaints, crit) {
		reporter := "anonymous"
		if c.UserName != nil {
			reporter = *c.UserName
		}
		fmt.Printf("%d\t%s\t[%s]\t%s\t%s\n", c.ID, c.Status, c.Category, reporter, c.Title)
	}
	return nil
}

func resolveComplaint(ctx context.Context, repo *complaint.Repository, id int64, response string) error {
	existing, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	patch := models.ComplaintPatch{Status: models.StatusResolved, AdminResponse: response}
	if err := complaint.ValidateResolution(patch, existing); err != nil {
		return err
	}
	_, err = repo.Update(ctx, id, patch)
	return err
}
