package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"parking-cli/parking"
	"parking-cli/storage"
)

func useDataFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), storage.DefaultDataFile)
	prev := cfg
	cfg = Config{DataFile: path}
	t.Cleanup(func() {
		cfg = prev
		outputJSON = false
	})
	return path
}

func storedGrid(t *testing.T, path string) *parking.Grid {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	grid, err := storage.DecodeSnapshot(data)
	require.NoError(t, err)
	return grid
}

func TestBookCommand(t *testing.T) {
	path := useDataFile(t)

	var out bytes.Buffer
	cmd := bookCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--day", "2", "--accessible", "--name", "Ada", "--license", "AB-1"})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "Your accessible parking space number is 1.\n", out.String())
	b, ok := storedGrid(t, path).Get(1, 0)
	require.True(t, ok)
	require.Equal(t, parking.Booking{Name: "Ada", CarLicense: "AB-1", IsAccessible: true}, b)
}

func TestBookCommandJSON(t *testing.T) {
	useDataFile(t)
	outputJSON = true

	var out, errOut bytes.Buffer
	cmd := bookCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--day", "14", "--name", "Bob", "--license", "CD-2"})
	require.NoError(t, cmd.Execute())

	var result bookingResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Equal(t, bookingResult{Day: 14, Space: 6, Name: "Bob", CarLicense: "CD-2"}, result)
	require.Contains(t, errOut.String(), "Your general parking space number is 6.")
}

func TestBookCommandNoSpaceStillSaves(t *testing.T) {
	path := useDataFile(t)
	grid := parking.NewGrid()
	occupy(grid, 0, 0, parking.SlotsPerDay, false)
	data, err := storage.EncodeSnapshot(grid)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	before, err := os.Stat(path)
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := bookCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--day", "1", "--name", "Late", "--license", "Z"})
	err = cmd.Execute()
	require.ErrorIs(t, err, parking.ErrNoSpaceAvailable)

	require.Contains(t, out.String(), "Sorry, no spaces (general or accessible) are available on this day.")
	require.Equal(t, grid, storedGrid(t, path))
	after, err := os.Stat(path)
	require.NoError(t, err)
	require.False(t, after.ModTime().Before(before.ModTime()))
}

func TestBookCommandValidation(t *testing.T) {
	useDataFile(t)

	for _, args := range [][]string{
		{"--day", "0", "--name", "A", "--license", "B"},
		{"--day", "15", "--name", "A", "--license", "B"},
		{"--day", "3", "--license", "B"},
	} {
		cmd := bookCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		require.Error(t, cmd.Execute(), args)
	}
}

func TestStatsCommandJSON(t *testing.T) {
	path := useDataFile(t)
	grid := parking.NewGrid()
	occupy(grid, 2, 0, 1, true)
	occupy(grid, 2, 5, 7, false)
	data, err := storage.EncodeSnapshot(grid)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	outputJSON = true

	var out bytes.Buffer
	cmd := statsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var report parking.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Equal(t, parking.Summarize(grid), report)
	require.Equal(t, 3, report.Total)
}

func TestResetCommand(t *testing.T) {
	path := useDataFile(t)
	grid := parking.NewGrid()
	occupy(grid, 0, 0, parking.SlotsPerDay, false)
	data, err := storage.EncodeSnapshot(grid)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var out bytes.Buffer
	cmd := resetCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	require.Equal(t, "Parking system reset complete.\n", out.String())
	require.Equal(t, parking.NewGrid(), storedGrid(t, path))
}

func TestApplyEnvOverridesConfig(t *testing.T) {
	t.Setenv(envConnectionString, "sqlite://parking.db")
	t.Setenv(envDataFile, "")

	conf := Config{DataFile: "custom.json", ConnectionString: "postgres://old"}
	applyEnv(&conf)
	require.Equal(t, "sqlite://parking.db", conf.ConnectionString)
	require.Equal(t, "custom.json", conf.DataFile)
}
