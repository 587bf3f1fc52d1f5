package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"leave-manager/internal/config"
	"leave-manager/internal/database"
	"leave-manager/internal/models"
	"leave-manager/internal/repositories"
	"leave-manager/internal/services"
)

// adduser creates an account directly in the configured database, e.g. the
// first admin before the API is exposed.
func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	name := flag.String("name", "", "display name")
	role := flag.String("role", models.RoleAdmin, "admin or employee")
	flag.Parse()

	if *email == "" || *password == "" || *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: adduser -email <email> -password <password> -name <name> [-role admin|employee]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	userService := services.NewUserService(repositories.NewUserRepository(db), repositories.NewLeaveRepository(db))
	user, err := userService.CreateUser(ctx, models.UserInput{
		Email:    *email,
		Password: *password,
		Name:     *name,
		Role:     *role,
	})
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			log.Fatalf("Invalid input: %v", verr)
		}
		log.Fatalf("Failed to create user: %v", err)
	}
	fmt.Printf("Created %s %s (id %d)\n", user.Role, user.Email, user.ID)
}
