package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		ferryDate, ferryCount = "", 5
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestFerryCommand(t *testing.T) {
	t.Setenv("TIMEZONE", "America/Vancouver")

	t.Run("imprime os horários de um dia", func(t *testing.T) {
		out, err := runCLI(t, "ferry", "gabriola-to-nanaimo", "--date", "2026-06-02")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.NotEmpty(t, lines)
		assert.True(t, strings.HasPrefix(lines[0], "Tue 2026-06-02"), lines[0])
		assert.Contains(t, out, "dangerous cargo")
	})

	t.Run("imprime as próximas saídas", func(t *testing.T) {
		out, err := runCLI(t, "ferry", "nanaimo-to-gabriola", "-n", "2")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
	})

	t.Run("sentido desconhecido falha", func(t *testing.T) {
		_, err := runCLI(t, "ferry", "to-victoria", "--date", "2026-06-02")
		assert.Error(t, err)
	})

	t.Run("data inválida falha", func(t *testing.T) {
		_, err := runCLI(t, "ferry", "gabriola-to-nanaimo", "--date", "02/06/2026")
		assert.ErrorContains(t, err, "invalid --date")
	})
}

func TestCreateAdminRequiresEmail(t *testing.T) {
	_, err := runCLI(t, "create-admin")
	assert.EqualError(t, err, "--email is required")
}

func TestPrintDepartures(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	require.NoError(t, err)

	var out bytes.Buffer
	printDepartures(&out, []entities.Departure{
		{DepartsAt: time.Date(2026, 6, 2, 10, 30, 0, 0, loc), Note: "dangerous cargo"},
		{DepartsAt: time.Date(2026, 6, 2, 11, 35, 0, 0, loc)},
	}, loc)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "10:30")
	assert.Contains(t, lines[0], "dangerous cargo")
	assert.Contains(t, lines[1], "11:35")
}
