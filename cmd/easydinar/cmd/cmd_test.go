package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rabie-karouia/EasyDinar/internal/modules/exchange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		currenciesFormat = "table"
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCurrenciesTable(t *testing.T) {
	out, err := run(t, "currencies")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(exchange.Currencies)+2)
	assert.True(t, strings.HasPrefix(lines[2], "TND"), "the dinar is listed first")
}

func TestCurrenciesJSON(t *testing.T) {
	out, err := run(t, "currencies", "--format", "json")
	require.NoError(t, err)

	var got []exchange.Currency
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, exchange.Currencies, got)
}

func TestCurrenciesRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "currencies", "--format", "yaml")
	assert.ErrorContains(t, err, `invalid format "yaml"`)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "easydinar v"+version+"\n", out)
}
