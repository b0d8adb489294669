package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/Abdelrazek97/form-app/config"
	"github.com/Abdelrazek97/form-app/database"
	"github.com/Abdelrazek97/form-app/services"
	"github.com/Abdelrazek97/form-app/utils"
)

func main() {
	username := flag.String("username", "", "admin username (default ADMIN_USERNAME)")
	password := flag.String("password", "", "admin password (default ADMIN_PASSWORD)")
	fullName := flag.String("full-name", "", "admin full name (default ADMIN_FULL_NAME)")
	reset := flag.Bool("reset", false, "reset the password of an existing account instead of creating one")
	list := flag.Bool("list", false, "list existing accounts and exit")
	flag.Parse()

	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	env, err := config.GetForCLI()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if *username == "" {
		*username = env.ADMIN_USERNAME
	}
	if *password == "" {
		*password = env.ADMIN_PASSWORD
	}
	if *fullName == "" {
		*fullName = env.ADMIN_FULL_NAME
	}
	if !*list && (*username == "" || *password == "") {
		log.Fatal("Admin username and password are required (flags or ADMIN_USERNAME/ADMIN_PASSWORD)")
	}

	logger, err := utils.NewLogger(env.LOG_LEVEL, env.GO_ENV)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	store, err := database.StartGORM(env, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Faculty Records - Admin Provisioning")
	fmt.Println(separator)

	ctx := context.Background()
	credentials := services.NewCredentialService(store.DB(), logger)

	if *list {
		users, err := credentials.ListUsers(ctx)
		if err != nil {
			log.Fatalf("Listing accounts failed: %v", err)
		}
		for _, u := range users {
			fmt.Printf("%4d  %-20s %-6s %s\n", u.ID, u.Username, u.Role, u.FullName)
		}
		return
	}

	if *reset {
		if err := credentials.ResetPassword(ctx, *username, *password); err != nil {
			log.Fatalf("Password reset failed: %v", err)
		}
		fmt.Printf("Password for %q has been reset.\n", *username)
		return
	}

	created, err := credentials.ProvisionAdmin(ctx, *username, *password, *fullName)
	if err != nil {
		log.Fatalf("Provisioning failed: %v", err)
	}
	if !created {
		fmt.Println("An admin account already exists, nothing to do. Use -reset to change its password.")
		return
	}
	total, err := credentials.CountUsers(ctx)
	if err != nil {
		log.Fatalf("Counting accounts failed: %v", err)
	}
	fmt.Printf("Admin %q created (%d accounts total).\n", *username, total)
}
