package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/qrisk-adk/pkg/engine"
)

func TestAnalyzeWritesCSV(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("QRISK_CONFIG", filepath.Join(dir, "config.yaml"))
	out := filepath.Join(dir, "risk.csv")

	rootCmd.SetArgs([]string{"analyze", "--format", "csv", "--output", out, "--advancement", "1.0"})
	require.NoError(t, rootCmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)
	assert.Equal(t, engine.RiskReportColumns, records[0])
}

func TestLoadProfileAppliesFlags(t *testing.T) {
	t.Setenv("QRISK_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	t.Setenv("QRISK_READINESS", "Medium")

	cmd := complianceCmd
	require.NoError(t, cmd.ParseFlags([]string{"--bank-size", "Small"}))
	t.Cleanup(func() {
		_ = cmd.Flags().Set("bank-size", "")
		cmd.Flags().Lookup("bank-size").Changed = false
	})

	p, err := loadProfile(cmd)
	require.NoError(t, err)
	assert.Equal(t, engine.BankSmall, p.BankSize)
	assert.Equal(t, engine.ReadinessMedium, p.Readiness)
	assert.Equal(t, "Sample Bank Corp", p.BankName)
}

func TestLoadInventoryDefaultsToSample(t *testing.T) {
	inv, err := loadInventory("")
	require.NoError(t, err)
	assert.Len(t, inv.Assets, 10)

	_, err = loadInventory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
