package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/maktabhq/maktab-backend/internal/config"
	"github.com/maktabhq/maktab-backend/internal/database"
	"github.com/maktabhq/maktab-backend/internal/logger"
	"github.com/maktabhq/maktab-backend/internal/repository"
	"github.com/maktabhq/maktab-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Services ───────────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	authzRepo := repository.NewAuthzRepository(pool)
	authService := service.NewAuthService(cfg, userRepo, rdb)
	authzService := service.NewAuthzService(authzRepo)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	// Name
	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	// Email
	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	// Password
	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	// Role (optional)
	fmt.Print("Enter Role Name (optional, must exist): ")
	roleName, _ := reader.ReadString('\n')
	roleName = strings.TrimSpace(roleName)

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := authService.Register(ctx, name, email, password)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	if roleName != "" {
		if err := authzService.AssignRoleToUser(ctx, user.ID, roleName); err != nil {
			log.Fatal().Err(err).Msg("User created, but role assignment failed")
		}
	}

	fmt.Printf("\nSuccess! User '%s' (%s) created with ID: %d\n", user.Name, user.Email, user.ID)
}
