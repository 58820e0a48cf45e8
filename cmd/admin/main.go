// Package main provides account management utilities for Tribuna.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"tribuna/internal/config"
	"tribuna/internal/database"
	"tribuna/internal/models"

	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go deactivate <user_id>        - Disable an account")
		fmt.Println("  go run ./cmd/admin/main.go activate <user_id>          - Re-enable an account")
		fmt.Println("  go run ./cmd/admin/main.go list-candidates [faculty]   - List candidate accounts")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "deactivate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go deactivate <user_id>")
			os.Exit(1)
		}
		setActive(db, os.Args[2], false)

	case "activate":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go activate <user_id>")
			os.Exit(1)
		}
		setActive(db, os.Args[2], true)

	case "list-candidates":
		faculty := ""
		if len(os.Args) >= 3 {
			faculty = os.Args[2]
		}
		listCandidates(db, faculty)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setActive(db *gorm.DB, userID string, active bool) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fmt.Printf("User with ID %s not found\n", userID)
		} else {
			log.Fatalf("Database error: %v", err)
		}
		os.Exit(1)
	}

	if user.IsActive == active {
		state := "active"
		if !active {
			state = "inactive"
		}
		fmt.Printf("User %s (ID: %d) is already %s\n", user.FullName, user.ID, state)
		return
	}

	user.IsActive = active
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user: %v", err)
	}

	if active {
		fmt.Printf("✅ Re-enabled account for %s (ID: %d)\n", user.FullName, user.ID)
	} else {
		fmt.Printf("✅ Disabled account for %s (ID: %d)\n", user.FullName, user.ID)
	}
}

func listCandidates(db *gorm.DB, faculty string) {
	if faculty != "" && !models.ValidFaculty(faculty) {
		fmt.Printf("Unknown faculty: %s\n", faculty)
		os.Exit(1)
	}

	query := db.Where("user_type = ?", models.UserTypeCandidate)
	if faculty != "" {
		query = query.Where("candidate_faculty = ?", faculty)
	}

	var candidates []models.User
	if err := query.Order("candidate_faculty, candidate_position, full_name").Find(&candidates).Error; err != nil {
		log.Fatalf("Failed to fetch candidates: %v", err)
	}

	if len(candidates) == 0 {
		fmt.Println("No candidates found")
		return
	}

	fmt.Println("\n📋 Registered Candidates:")
	fmt.Println("─────────────────────────────────────")
	for _, c := range candidates {
		status := ""
		if !c.IsActive {
			status = " [disabled]"
		}
		fmt.Printf("ID: %d | %s | %s / %s | %s%s\n",
			c.ID, c.FullName, c.Candidate.Faculty, c.Candidate.Position, c.Email, status)
	}
	fmt.Println("─────────────────────────────────────")
}
