package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maktabhq/maktab-backend/internal/config"
	"github.com/maktabhq/maktab-backend/internal/database"
	"github.com/maktabhq/maktab-backend/internal/logger"
	"github.com/maktabhq/maktab-backend/internal/model"
	"github.com/maktabhq/maktab-backend/internal/repository"
	"github.com/maktabhq/maktab-backend/internal/service"
)

// Baseline roles and their permission grants. Re-running the seed is safe:
// creates skip existing names and binding inserts are idempotent.
var roleGrants = map[string][]string{
	"admin":     {"students:read", "students:write", "payments:write", "roles:manage"},
	"registrar": {"students:read", "students:write", "payments:write"},
}

// Starter course catalog. The API intentionally exposes no course deletion,
// so the catalog is bootstrapped here.
var courses = []model.Course{
	{Name: "Mathematics", Description: "Algebra, geometry and introductory calculus"},
	{Name: "Physics", Description: "Mechanics, electricity and magnetism"},
	{Name: "English", Description: "Grammar, composition and literature"},
	{Name: "History", Description: "World and national history"},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	authzRepo := repository.NewAuthzRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	authzService := service.NewAuthzService(authzRepo)
	courseService := service.NewCourseService(courseRepo)

	fmt.Println("=== Seeding roles, permissions and courses ===")

	seen := map[string]bool{}
	for roleName, permNames := range roleGrants {
		if _, err := authzService.CreateRole(ctx, roleName); err != nil && !errors.Is(err, service.ErrDuplicateName) {
			log.Fatal().Err(err).Str("role", roleName).Msg("Failed to create role")
		}

		for _, permName := range permNames {
			if !seen[permName] {
				if _, err := authzService.CreatePermission(ctx, permName); err != nil && !errors.Is(err, service.ErrDuplicateName) {
					log.Fatal().Err(err).Str("permission", permName).Msg("Failed to create permission")
				}
				seen[permName] = true
			}

			if err := authzService.GrantPermissionToRole(ctx, roleName, permName); err != nil {
				log.Fatal().Err(err).Str("role", roleName).Str("permission", permName).Msg("Failed to grant permission")
			}
		}
		fmt.Printf("Role %q ready with %d permissions\n", roleName, len(permNames))
	}

	existing, err := courseService.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list courses")
	}
	known := map[string]bool{}
	for _, c := range existing {
		known[c.Name] = true
	}

	created := 0
	for _, c := range courses {
		if known[c.Name] {
			continue
		}
		course := c
		if err := courseService.Create(ctx, &course); err != nil {
			log.Fatal().Err(err).Str("course", c.Name).Msg("Failed to create course")
		}
		created++
	}
	fmt.Printf("Course catalog ready (%d created, %d existing)\n", created, len(existing))
}
