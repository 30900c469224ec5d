package cmd

import (
	"fmt"
	"strings"

	"parking-cli/parking"

	"github.com/spf13/cobra"
)

type bookingResult struct {
	Day        int    `json:"day"`
	Space      int    `json:"space"`
	Accessible bool   `json:"accessible_space"`
	Fallback   bool   `json:"fallback"`
	Name       string `json:"name"`
	CarLicense string `json:"car_license"`
}

func bookCmd() *cobra.Command {
	var day int
	var accessible bool
	var name string
	var license string

	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a parking space without the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(license) == "" {
				return fmt.Errorf("--name and --license are required")
			}
			dayIndex := day - 1
			if err := parking.ValidateDay(dayIndex); err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			grid, err := store.Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputJSON {
				out = cmd.ErrOrStderr()
			}
			alloc, bookErr := bookSpace(out, grid, dayIndex, accessible, func() (parking.Booking, error) {
				return parking.Booking{Name: name, CarLicense: license}, nil
			})

			if err := persist(ctx, store, grid); err != nil {
				return err
			}
			if bookErr != nil {
				return bookErr
			}

			if outputJSON {
				return writeJSON(cmd.OutOrStdout(), bookingResult{
					Day:        alloc.Day + 1,
					Space:      alloc.Number(),
					Accessible: alloc.Accessible(),
					Fallback:   alloc.Fallback,
					Name:       alloc.Booking.Name,
					CarLicense: alloc.Booking.CarLicense,
				})
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Day of the allotment (1-14)")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Request an accessible space")
	cmd.Flags().StringVar(&name, "name", "", "Visitor name")
	cmd.Flags().StringVar(&license, "license", "", "Car license number")
	return cmd
}
