package cmd

import (
	"fmt"
	"log"

	coreuser "github.com/frahmantamala/grievance-management/internal/core/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, table := range []string{"feedback", "attachments", "comments", "grievances", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seeds := []coreuser.User{
			{Name: "Admin", Email: "admin@mail.com", Role: coreuser.RoleAdmin, Department: "Operations"},
			{Name: "Maya Manager", Email: "maya@mail.com", Role: coreuser.RoleManager, Department: "Operations"},
			{Name: "Sam Staff", Email: "sam@mail.com", Role: coreuser.RoleStaff, Department: "Support"},
			{Name: "Uma User", Email: "uma@mail.com", Role: coreuser.RoleUser, Department: "Support"},
		}

		for _, u := range seeds {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Email)
				continue
			}

			u.PasswordHash = string(hash)
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			}
			fmt.Printf("Seeded user: %s (%s)\n", u.Email, u.Role)
		}
	},
}
