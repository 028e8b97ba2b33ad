package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel-marketplace/models"
	"hotel-marketplace/services"
)

func CreateAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			db, err := getDB()
			if err != nil {
				return err
			}

			admin, err := services.NewAdminService(db).Create(services.CreateAdminInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     role,
			}, nil)
			if err != nil {
				return fmt.Errorf("failed to create admin: %w", err)
			}
			fmt.Printf("Created %s %s (id %d)\n", admin.Role, admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "Super Admin", "Display name")
	cmd.Flags().String("email", "", "Login email")
	cmd.Flags().String("password", "", "Login password (min 6 characters)")
	cmd.Flags().String("role", models.AdminRoleSuperAdmin, "Admin role")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
