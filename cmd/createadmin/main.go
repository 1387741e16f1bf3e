// Command createadmin creates a verified, active admin account directly in
// the database, or promotes an existing account to that state. Meant for
// operators; bypasses the registration flow.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "admin email (required)")
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required for new accounts)")
	flag.Parse()

	if *email == "" {
		log.Fatal("-email is required")
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))

	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DATABASE_HOST", "localhost"),
		envOr("DATABASE_PORT", "5432"),
		envOr("DATABASE_USER", "postgres"),
		os.Getenv("DATABASE_PASSWORD"),
		envOr("DATABASE_DBNAME", "identity_db"),
		envOr("DATABASE_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	var id int64
	err = db.QueryRow("SELECT id FROM users WHERE LOWER(email) = $1", normalized).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		if *password == "" {
			log.Fatal("-password is required when creating a new account")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		now := time.Now()
		err = db.QueryRow(
			`INSERT INTO users (email, username, password, is_verified, is_active, slug, created_at, updated_at)
			 VALUES ($1, $2, $3, TRUE, TRUE, $4, $5, $5) RETURNING id`,
			normalized, *username, string(hashed), slugFromEmail(normalized), now,
		).Scan(&id)
		if err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		fmt.Printf("Created verified admin account id=%d (%s)\n", id, normalized)
	case err != nil:
		log.Fatalf("failed to look up account: %v", err)
	default:
		if _, err := db.Exec(
			"UPDATE users SET is_verified = TRUE, is_active = TRUE, updated_at = $1 WHERE id = $2",
			time.Now(), id,
		); err != nil {
			log.Fatalf("failed to promote account: %v", err)
		}
		fmt.Printf("Promoted existing account id=%d (%s) to verified and active\n", id, normalized)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func slugFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	var b strings.Builder
	lastHyphen := true
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "admin"
	}
	// Collisions are unlikely for an ops command; suffix with a timestamp
	// rather than looping.
	return fmt.Sprintf("%s-%d", slug, time.Now().Unix())
}
