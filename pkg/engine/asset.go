package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAlgorithm         = errors.New("unknown crypto algorithm")
	ErrInvalidAsset             = errors.New("invalid crypto asset")
	ErrInvalidAdvancementFactor = errors.New("quantum advancement factor must be a positive finite number")
)

// CryptoAlgorithm is one of the ten algorithms the risk tables know about
type CryptoAlgorithm string

const (
	RSA2048   CryptoAlgorithm = "RSA-2048"
	RSA4096   CryptoAlgorithm = "RSA-4096"
	ECC256    CryptoAlgorithm = "ECC-256"
	ECC384    CryptoAlgorithm = "ECC-384"
	AES128    CryptoAlgorithm = "AES-128"
	AES256    CryptoAlgorithm = "AES-256"
	SHA256    CryptoAlgorithm = "SHA-256"
	SHA3      CryptoAlgorithm = "SHA-3"
	DES       CryptoAlgorithm = "DES"
	TripleDES CryptoAlgorithm = "3DES"
)

// Algorithms lists the closed enumeration in declaration order
var Algorithms = []CryptoAlgorithm{
	RSA2048, RSA4096, ECC256, ECC384, AES128, AES256, SHA256, SHA3, DES, TripleDES,
}

// ParseAlgorithm maps a user supplied name onto the enumeration.
// Matching ignores case and surrounding whitespace.
func ParseAlgorithm(s string) (CryptoAlgorithm, error) {
	name := strings.TrimSpace(s)
	for _, a := range Algorithms {
		if strings.EqualFold(string(a), name) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// UsageArea names where in the bank an algorithm is used
type UsageArea string

const (
	CoreBanking            UsageArea = "Core Banking"
	PaymentProcessing      UsageArea = "Payment Processing"
	CustomerAuthentication UsageArea = "Customer Authentication"
	InternalCommunications UsageArea = "Internal Communications"
	DataStorage            UsageArea = "Data Storage"
	APISecurity            UsageArea = "API Security"
	MobileBanking          UsageArea = "Mobile Banking"
	ATMNetwork             UsageArea = "ATM Network"
)

var UsageAreas = []UsageArea{
	CoreBanking, PaymentProcessing, CustomerAuthentication, InternalCommunications,
	DataStorage, APISecurity, MobileBanking, ATMNetwork,
}

// Sensitivity is the classification of the data an asset protects
type Sensitivity string

const (
	SensitivityCritical Sensitivity = "Critical"
	SensitivityHigh     Sensitivity = "High"
	SensitivityMedium   Sensitivity = "Medium"
	SensitivityLow      Sensitivity = "Low"
)

var Sensitivities = []Sensitivity{SensitivityCritical, SensitivityHigh, SensitivityMedium, SensitivityLow}

// CryptoAsset is a single place where the bank relies on an algorithm
type CryptoAsset struct {
	Name            string          `yaml:"name" json:"name"`
	Algorithm       CryptoAlgorithm `yaml:"algorithm" json:"algorithm"`
	KeySize         int             `yaml:"key_size" json:"key_size"`
	UsageArea       UsageArea       `yaml:"usage_area" json:"usage_area"`
	DataSensitivity Sensitivity     `yaml:"data_sensitivity" json:"data_sensitivity"`
	DataVolumeGB    float64         `yaml:"estimated_data_volume_gb" json:"estimated_data_volume_gb"`
}

// Validate checks the fields the engines cannot default.
// Usage area and sensitivity are free-form: unknown values fall back to table defaults.
func (a CryptoAsset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidAsset)
	}
	if _, err := ParseAlgorithm(string(a.Algorithm)); err != nil {
		return fmt.Errorf("asset %q: %w", a.Name, err)
	}
	if a.KeySize <= 0 {
		return fmt.Errorf("%w: asset %q has non-positive key size %d", ErrInvalidAsset, a.Name, a.KeySize)
	}
	if a.DataVolumeGB < 0 {
		return fmt.Errorf("%w: asset %q has negative data volume", ErrInvalidAsset, a.Name)
	}
	return nil
}

// Normalize returns a copy with the algorithm name canonicalised
func (a CryptoAsset) Normalize() (CryptoAsset, error) {
	alg, err := ParseAlgorithm(string(a.Algorithm))
	if err != nil {
		return a, fmt.Errorf("asset %q: %w", a.Name, err)
	}
	a.Algorithm = alg
	if err := a.Validate(); err != nil {
		return a, err
	}
	return a, nil
}

// Inventory is an ordered list of assets
type Inventory struct {
	Assets []CryptoAsset `yaml:"assets" json:"assets"`
}

// Add appends an asset after validating it
func (inv *Inventory) Add(asset CryptoAsset) error {
	a, err := asset.Normalize()
	if err != nil {
		return err
	}
	inv.Assets = append(inv.Assets, a)
	return nil
}

// Algorithms returns the distinct algorithm names in first-seen order
func (inv *Inventory) Algorithms() []CryptoAlgorithm {
	seen := make(map[CryptoAlgorithm]bool)
	var out []CryptoAlgorithm
	for _, a := range inv.Assets {
		if !seen[a.Algorithm] {
			seen[a.Algorithm] = true
			out = append(out, a.Algorithm)
		}
	}
	return out
}

// UsageAreas returns the distinct usage areas in first-seen order
func (inv *Inventory) UsageAreas() []UsageArea {
	seen := make(map[UsageArea]bool)
	var out []UsageArea
	for _, a := range inv.Assets {
		if !seen[a.UsageArea] {
			seen[a.UsageArea] = true
			out = append(out, a.UsageArea)
		}
	}
	return out
}

// LoadInventory reads a YAML asset list. Every asset is validated.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseInventory(data)
}

// ParseInventory decodes YAML (or JSON, which is valid YAML) into a validated inventory
func ParseInventory(data []byte) (*Inventory, error) {
	var raw Inventory
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse inventory: %w", err)
	}

	inv := &Inventory{Assets: make([]CryptoAsset, 0, len(raw.Assets))}
	for i, a := range raw.Assets {
		if err := inv.Add(a); err != nil {
			return nil, fmt.Errorf("inventory entry %d: %w", i+1, err)
		}
	}
	return inv, nil
}

// SampleInventory is the demo inventory of a mid-sized bank
func SampleInventory() *Inventory {
	return &Inventory{Assets: []CryptoAsset{
		{"Core Banking TLS", RSA2048, 2048, CoreBanking, SensitivityCritical, 5000},
		{"Payment Gateway", RSA4096, 4096, PaymentProcessing, SensitivityCritical, 2000},
		{"Customer Auth Keys", ECC256, 256, CustomerAuthentication, SensitivityHigh, 500},
		{"Mobile App Signing", ECC384, 384, MobileBanking, SensitivityHigh, 100},
		{"Data-at-Rest", AES256, 256, DataStorage, SensitivityCritical, 50000},
		{"API Gateway", RSA2048, 2048, APISecurity, SensitivityMedium, 300},
		{"ATM Communication", TripleDES, 168, ATMNetwork, SensitivityHigh, 150},
		{"Internal Email", RSA2048, 2048, InternalCommunications, SensitivityLow, 200},
		{"Database Encryption", AES128, 128, DataStorage, SensitivityHigh, 15000},
		{"Digital Signatures", SHA256, 256, CoreBanking, SensitivityCritical, 1000},
	}}
}
