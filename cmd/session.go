package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"parking-cli/parking"
	"parking-cli/storage"

	"github.com/spf13/cobra"
)

func runSession(cmd *cobra.Command, args []string) error {
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

	return NewSession(store, grid, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}

// Session is the interactive menu. It owns the grid for the run and saves it
// after every booking attempt and every reset.
type Session struct {
	store *storage.Store
	grid  *parking.Grid
	in    *bufio.Reader
	out   io.Writer
}

func NewSession(store *storage.Store, grid *parking.Grid, in io.Reader, out io.Writer) *Session {
	return &Session{
		store: store,
		grid:  grid,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run shows the menu until the visitor exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "1. Book parking space")
		fmt.Fprintln(s.out, "2. Display statistics")
		fmt.Fprintln(s.out, "3. Reset parking system")
		fmt.Fprintln(s.out, "4. Exit")

		choice, err := s.prompt("Enter your choice (1-4): ")
		if err != nil {
			return s.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			if err := s.book(ctx); err != nil {
				return s.finish(err)
			}
		case "2":
			renderReport(s.out, parking.Summarize(s.grid))
		case "3":
			if err := s.reset(ctx); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please enter a number between 1 and 4.")
		}
	}
}

func (s *Session) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

// book takes bookings until the visitor answers no to booking another.
func (s *Session) book(ctx context.Context) error {
	for {
		day, err := s.promptDay()
		if err != nil {
			return err
		}

		answer, err := s.prompt("Do you need an accessible parking space? (yes/no): ")
		if err != nil {
			return err
		}
		accessible := isAnswer(answer, "yes")

		_, err = bookSpace(s.out, s.grid, day, accessible, s.promptDetails)
		if err != nil && !errors.Is(err, parking.ErrNoSpaceAvailable) {
			return err
		}

		if err := persist(ctx, s.store, s.grid); err != nil {
			return err
		}

		another, err := s.prompt("Do you want to book another parking space? (yes/no): ")
		if err != nil {
			return err
		}
		if isAnswer(another, "no") {
			return nil
		}
	}
}

func (s *Session) promptDay() (int, error) {
	for {
		input, err := s.prompt("Enter a day (1-14) for parking: ")
		if err != nil {
			return 0, err
		}

		day, err := parseDay(input)
		switch {
		case errors.Is(err, parking.ErrInvalidDay):
			fmt.Fprintln(s.out, "Invalid day! Please enter a number between 1 and 14.")
		case err != nil:
			fmt.Fprintln(s.out, "Invalid input. Please enter a valid number.")
		default:
			return day, nil
		}
	}
}

func (s *Session) promptDetails() (parking.Booking, error) {
	name, err := s.prompt("Enter your name: ")
	if err != nil {
		return parking.Booking{}, err
	}
	license, err := s.prompt("Enter your car license number: ")
	if err != nil {
		return parking.Booking{}, err
	}
	return parking.Booking{Name: name, CarLicense: license}, nil
}

func (s *Session) reset(ctx context.Context) error {
	s.grid.Reset()
	recorder.GridReset()
	fmt.Fprintln(s.out, "Parking system reset complete.")
	return persist(ctx, s.store, s.grid)
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
