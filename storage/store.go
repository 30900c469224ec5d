package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"parking-cli/parking"
)

var (
	// ErrNotFound is returned by a Backend that holds no snapshot yet.
	ErrNotFound = errors.New("no stored parking data")

	// ErrMalformedData is returned when a stored snapshot cannot be decoded.
	ErrMalformedData = errors.New("malformed parking data")

	// ErrStorageUnavailable wraps failures to reach, read or write a backend.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Backend stores one serialized snapshot. Write replaces the previous
// snapshot in a single step.
type Backend interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}

type Options struct {
	// ConnectionString selects the document backend when set.
	ConnectionString string
	// DataFile is the snapshot path for the file backend.
	DataFile string
}

// OpenBackend picks the document backend when a connection string is
// configured and the file backend otherwise.
func OpenBackend(ctx context.Context, opts Options) (Backend, error) {
	if strings.TrimSpace(opts.ConnectionString) != "" {
		return OpenDocumentBackend(ctx, opts.ConnectionString)
	}
	path := opts.DataFile
	if path == "" {
		path = DefaultDataFile
	}
	return NewFileBackend(path), nil
}

// Store loads and saves the parking grid through a Backend.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{backend: backend, logger: logger.With(slog.String("backend", backend.Name()))}
}

// Load returns the stored grid. A missing snapshot is initialised and saved
// right away. A malformed snapshot is logged and replaced by an empty grid
// for this run; the stored copy is left as is until the next save.
func (s *Store) Load(ctx context.Context) (*parking.Grid, error) {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotFound) {
		s.logger.InfoContext(ctx, "no existing parking data found, starting with an empty system")
		grid := parking.NewGrid()
		if err := s.Save(ctx, grid); err != nil {
			return nil, err
		}
		return grid, nil
	}
	if err != nil {
		return nil, err
	}

	grid, err := DecodeSnapshot(data)
	if err != nil {
		s.logger.WarnContext(ctx, "error decoding parking data, starting with an empty system", slog.Any("error", err))
		return parking.NewGrid(), nil
	}
	s.logger.InfoContext(ctx, "parking data loaded")
	return grid, nil
}

func (s *Store) Save(ctx context.Context, grid *parking.Grid) error {
	data, err := EncodeSnapshot(grid)
	if err != nil {
		return fmt.Errorf("encode parking data: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "parking data saved")
	return nil
}

func (s *Store) Close() error {
	return s.backend.Close()
}
