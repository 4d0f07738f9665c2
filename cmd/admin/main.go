package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/complaint"
	"complaintwall/backend/internal/config"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	store := storage.NewService(db, nil) // No redis needed for admin CLI
	ctx := context.Background()

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, set-status, list")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <name> <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(ctx, store, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s created.\n", os.Args[3])
	case "set-status":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin set-status <complaint_id> <status> [note]")
			os.Exit(1)
		}
		id, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			fmt.Println("Invalid complaint ID. Please provide an integer.")
			os.Exit(1)
		}
		note := ""
		if len(os.Args) > 4 {
			note = os.Args[4]
		}
		number, err := setStatus(ctx, store, uint(id), os.Args[3], note)
		if err != nil {
			log.Fatalf("Error updating complaint: %v", err)
		}
		fmt.Printf("Complaint %s set to %s.\n", number, os.Args[3])
	case "list":
		if err := listComplaints(ctx, store); err != nil {
			log.Fatalf("Error listing complaints: %v", err)
		}
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func createAdmin(ctx context.Context, s storage.Storage, name, email, password string) error {
	hash, err := auth.HashPassword(password, config.BcryptCost)
	if err != nil {
		return err
	}
	return s.CreateUser(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	})
}

func setStatus(ctx context.Context, s storage.Storage, id uint, status, note string) (string, error) {
	svc := complaint.NewService(s, nil)
	in := complaint.UpdateInput{Status: &status}
	if note != "" {
		in.AdminNote = &note
	}
	updated, err := svc.UpdateStatus(ctx, id, in)
	if err != nil {
		return "", err
	}
	return updated.ComplaintNumber, nil
}

func listComplaints(ctx context.Context, s storage.Storage) error {
	complaints, err := s.ListComplaints(ctx)
	if err != nil {
		return err
	}
	for _, c := range complaints {
		fmt.Printf("%-6d %-24s %-12s %-8s %-14s %s\n",
			c.ID, c.ComplaintNumber, c.Category, c.Priority, c.Status, c.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
