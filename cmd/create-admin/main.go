package main

import (
	"bufio"
	"expedientes_app_go/config"
	"expedientes_app_go/db"
	"expedientes_app_go/models"
	"expedientes_app_go/services"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open database
	if err := db.Open(cfg.DBPath); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin User ===")
	fmt.Println()

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email (optional): ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	// Get password securely
	fmt.Print("Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	password := string(passwordBytes)
	fmt.Println() // New line after password input

	if username == "" || password == "" {
		log.Fatal("Username and password are required")
	}

	var count int64
	if err := db.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		log.Fatalf("Failed to check username: %v", err)
	}
	if count > 0 {
		log.Fatalf("Username %q already exists", username)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: hash,
		Email:    email,
		IsAdmin:  true,
		IsStaff:  true,
		IsActive: true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Admin user %q created (id %s)\n", user.Username, user.ID)
}
