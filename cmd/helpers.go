package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"parking-cli/metrics"
	"parking-cli/parking"
	"parking-cli/storage"
)

func openStore(ctx context.Context) (*storage.Store, error) {
	backend, err := storage.OpenBackend(ctx, storage.Options{
		ConnectionString: cfg.ConnectionString,
		DataFile:         cfg.DataFile,
	})
	if err != nil {
		return nil, err
	}
	return storage.NewStore(backend, logger), nil
}

// persist saves the grid and records the usage it was saved with.
func persist(ctx context.Context, store *storage.Store, grid *parking.Grid) error {
	if err := store.Save(ctx, grid); err != nil {
		return err
	}
	recorder.Saved(parking.Summarize(grid))
	return nil
}

// parseDay turns a one-based day entry into a zero-based index.
func parseDay(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("invalid day %q", input)
	}
	day := n - 1
	if err := parking.ValidateDay(day); err != nil {
		return 0, err
	}
	return day, nil
}

func isAnswer(input, want string) bool {
	return strings.EqualFold(strings.TrimSpace(input), want)
}

// bookSpace runs one allocation and prints the outcome to w. details is only
// called once a free space has been found. ErrNoSpaceAvailable is returned
// after the visitor has been told.
func bookSpace(w io.Writer, grid *parking.Grid, day int, accessible bool, details func() (parking.Booking, error)) (parking.Allocation, error) {
	alloc, err := parking.Allocate(grid, parking.Request{Day: day, Accessible: accessible}, func(slot parking.Slot) (parking.Booking, error) {
		if !accessible && slot.Accessible() {
			fmt.Fprintln(w, "No general spaces available. Trying accessible spaces...")
		}
		return details()
	})
	switch {
	case errors.Is(err, parking.ErrNoSpaceAvailable):
		if accessible {
			fmt.Fprintln(w, "Sorry, no accessible spaces are available on this day.")
		} else {
			fmt.Fprintln(w, "No general spaces available. Trying accessible spaces...")
			fmt.Fprintln(w, "Sorry, no spaces (general or accessible) are available on this day.")
		}
		recorder.BookingAttempt(accessible, metrics.OutcomeNoSpace)
		return parking.Allocation{}, err
	case err != nil:
		return parking.Allocation{}, err
	}

	switch {
	case alloc.Fallback:
		fmt.Fprintf(w, "All general spaces are full. You have been assigned accessible parking space number %d.\n", alloc.Number())
		recorder.BookingAttempt(accessible, metrics.OutcomeFallback)
	case accessible:
		fmt.Fprintf(w, "Your accessible parking space number is %d.\n", alloc.Number())
		recorder.BookingAttempt(accessible, metrics.OutcomeAssigned)
	default:
		fmt.Fprintf(w, "Your general parking space number is %d.\n", alloc.Number())
		recorder.BookingAttempt(accessible, metrics.OutcomeAssigned)
	}
	return alloc, nil
}

func renderReport(w io.Writer, report parking.Report) {
	for _, day := range report.Days {
		fmt.Fprintf(w, "Day %d:\n", day.Day)
		fmt.Fprintf(w, "  Accessible spaces used: %d\n", day.Accessible)
		fmt.Fprintf(w, "  General spaces used: %d\n", day.General)
		fmt.Fprintf(w, "  Total spaces used: %d\n", day.Total)
	}

	fmt.Fprintln(w, "\nOverall 14-day statistics:")
	fmt.Fprintf(w, "  Accessible spaces used in total: %d\n", report.Accessible)
	fmt.Fprintf(w, "  General spaces used in total: %d\n", report.General)
	fmt.Fprintf(w, "  Total spaces used in total: %d\n", report.Total)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
