package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel-marketplace/config"
	"hotel-marketplace/pricing"
	"hotel-marketplace/services"
	"hotel-marketplace/utils"
)

func RepriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reprice",
		Short: "Reprice every active hotel with auto pricing enabled",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, _ := cmd.Flags().GetInt("workers")
			if workers <= 0 {
				workers = utils.EnvInt("REPRICE_WORKERS", 4)
			}
			zone, _ := cmd.Flags().GetString("timezone")
			if zone == "" {
				zone = utils.EnvOrDefault("PRICING_TIMEZONE", "")
			}
			loc, err := config.LoadLocation(zone)
			if err != nil {
				return err
			}

			db, err := getDB()
			if err != nil {
				return err
			}

			svc := services.NewHotelService(db, pricing.NewEngine(loc))
			result, err := svc.RepriceActiveHotels(cmd.Context(), workers)
			fmt.Printf("%-8s  %-8s  %-8s\n", "Scanned", "Updated", "Skipped")
			fmt.Printf("%-8d  %-8d  %-8d\n", result.Scanned, result.Updated, result.Skipped)
			if err != nil {
				return fmt.Errorf("repricing stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "Hotels repriced concurrently (default REPRICE_WORKERS or 4)")
	cmd.Flags().String("timezone", "", "IANA zone deciding weekends and holidays (default PRICING_TIMEZONE)")

	return cmd
}
