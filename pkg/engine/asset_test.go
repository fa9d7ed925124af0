package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAlgorithm(t *testing.T) {
	alg, err := ParseAlgorithm(" rsa-2048 ")
	require.NoError(t, err)
	assert.Equal(t, RSA2048, alg)

	alg, err = ParseAlgorithm("3des")
	require.NoError(t, err)
	assert.Equal(t, TripleDES, alg)

	_, err = ParseAlgorithm("Blowfish")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAssetValidate(t *testing.T) {
	good := CryptoAsset{"TLS", RSA2048, 2048, CoreBanking, SensitivityHigh, 10}
	assert.NoError(t, good.Validate())

	noName := good
	noName.Name = " "
	assert.ErrorIs(t, noName.Validate(), ErrInvalidAsset)

	badKey := good
	badKey.KeySize = 0
	assert.ErrorIs(t, badKey.Validate(), ErrInvalidAsset)

	badVolume := good
	badVolume.DataVolumeGB = -1
	assert.ErrorIs(t, badVolume.Validate(), ErrInvalidAsset)

	badAlg := good
	badAlg.Algorithm = "ROT13"
	assert.ErrorIs(t, badAlg.Validate(), ErrUnknownAlgorithm)

	// free-form areas are allowed and fall back to defaults when scored
	custom := good
	custom.UsageArea = "Branch Kiosk"
	assert.NoError(t, custom.Validate())
}

const inventoryYAML = `
assets:
  - name: Card HSM
    algorithm: 3des
    key_size: 168
    usage_area: Payment Processing
    data_sensitivity: Critical
    estimated_data_volume_gb: 120
  - name: Partner API
    algorithm: ECC-256
    key_size: 256
    usage_area: API Security
    data_sensitivity: Medium
    estimated_data_volume_gb: 40
  - name: Backup Vault
    algorithm: ecc-256
    key_size: 256
    usage_area: Data Storage
    data_sensitivity: High
    estimated_data_volume_gb: 9000
`

func TestLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(inventoryYAML), 0o600))

	inv, err := LoadInventory(path)
	require.NoError(t, err)
	require.Len(t, inv.Assets, 3)

	assert.Equal(t, TripleDES, inv.Assets[0].Algorithm)
	assert.Equal(t, PaymentProcessing, inv.Assets[0].UsageArea)
	assert.Equal(t, 120.0, inv.Assets[0].DataVolumeGB)

	assert.Equal(t, []CryptoAlgorithm{TripleDES, ECC256}, inv.Algorithms())
	assert.Equal(t, []UsageArea{PaymentProcessing, APISecurity, DataStorage}, inv.UsageAreas())
}

func TestParseInventoryErrors(t *testing.T) {
	_, err := ParseInventory([]byte("assets:\n  - name: Legacy\n    algorithm: RC4\n    key_size: 128\n"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Contains(t, err.Error(), "inventory entry 1")

	_, err = ParseInventory([]byte("assets: ["))
	assert.Error(t, err)

	_, err = LoadInventory(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInventoryAdd(t *testing.T) {
	inv := &Inventory{}
	require.NoError(t, inv.Add(CryptoAsset{"Signing", "sha-3", 256, CoreBanking, SensitivityLow, 0}))
	assert.Equal(t, SHA3, inv.Assets[0].Algorithm)

	assert.Error(t, inv.Add(CryptoAsset{Name: "Broken", Algorithm: AES256}))
	assert.Len(t, inv.Assets, 1)
}

func TestSampleInventoryIsValid(t *testing.T) {
	inv := SampleInventory()
	require.Len(t, inv.Assets, 10)
	for _, a := range inv.Assets {
		assert.NoError(t, a.Validate(), a.Name)
	}
}

func TestProfileEngines(t *testing.T) {
	p := Profile{BankSize: BankSmall}.WithDefaults()
	assert.Equal(t, "Sample Bank Corp", p.BankName)
	assert.Equal(t, ReadinessLow, p.Readiness)
	assert.Equal(t, ToleranceMedium, p.RiskTolerance)
	assert.Equal(t, 1.0, p.AdvancementFactor)

	v, err := p.VulnerabilityEngine()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.AdvancementFactor())
	assert.Equal(t, 50, p.CostEngine().NumSystems())
	assert.Equal(t, StatusPlanning, p.ComplianceEngine().CurrentStatus())

	p.AdvancementFactor = -2
	_, err = p.VulnerabilityEngine()
	assert.ErrorIs(t, err, ErrInvalidAdvancementFactor)
}
