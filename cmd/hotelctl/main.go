// Command hotelctl runs operator tasks against the marketplace database:
// seeding sample hotels, batch repricing and creating admins.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"hotel-marketplace/config"
)

func getDB() (*gorm.DB, error) {
	if err := config.ConnectDatabase(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return config.DB, nil
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hotelctl",
		Short: "Hotel marketplace operator tool",
	}

	rootCmd.AddCommand(
		SeedCmd(),
		RepriceCmd(),
		CreateAdminCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
