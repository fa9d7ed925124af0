package engine

// RecommendationRule contributes advice when its predicate matches.
// Rules are evaluated in order and their advice is appended in order.
type RecommendationRule struct {
	Name    string
	Applies func(asset CryptoAsset, level ThreatLevel) bool
	Advice  []string
}

func algorithmIn(algs ...CryptoAlgorithm) func(CryptoAsset, ThreatLevel) bool {
	return func(a CryptoAsset, _ ThreatLevel) bool {
		for _, alg := range algs {
			if a.Algorithm == alg {
				return true
			}
		}
		return false
	}
}

func always(CryptoAsset, ThreatLevel) bool { return true }

// DefaultRecommendationRules returns the built-in rule set. The last rule always applies,
// so the result of ApplyRecommendationRules is never shorter than two entries.
func DefaultRecommendationRules() []RecommendationRule {
	return []RecommendationRule{
		{
			Name:    "rsa-family",
			Applies: algorithmIn(RSA2048, RSA4096),
			Advice: []string{
				"Migrate to post-quantum algorithms (CRYSTALS-Kyber, CRYSTALS-Dilithium)",
				"Implement hybrid encryption combining classical and PQC",
			},
		},
		{
			Name:    "ecc-family",
			Applies: algorithmIn(ECC256, ECC384),
			Advice: []string{
				"Transition to lattice-based cryptography",
				"Consider SPHINCS+ for digital signatures",
			},
		},
		{
			Name:    "des-family",
			Applies: algorithmIn(DES, TripleDES),
			Advice: []string{
				"IMMEDIATE: Replace with AES-256 as interim measure",
				"Plan for quantum-safe symmetric encryption",
			},
		},
		{
			Name: "elevated-threat",
			Applies: func(_ CryptoAsset, level ThreatLevel) bool {
				return level == ThreatCritical || level == ThreatHigh
			},
			Advice: []string{
				"Initiate emergency quantum readiness program",
				"Conduct comprehensive cryptographic inventory",
				"Establish quantum-safe key management infrastructure",
			},
		},
		{
			Name: "critical-data",
			Applies: func(a CryptoAsset, _ ThreatLevel) bool {
				return a.DataSensitivity == SensitivityCritical
			},
			Advice: []string{
				"Implement crypto-agility framework for rapid algorithm updates",
				"Consider quantum key distribution (QKD) for highest-value data",
			},
		},
		{
			Name:    "baseline",
			Applies: always,
			Advice: []string{
				"Regular security audits and penetration testing",
				"Staff training on quantum computing threats",
			},
		},
	}
}

// ApplyRecommendationRules concatenates the advice of every matching rule
func ApplyRecommendationRules(rules []RecommendationRule, asset CryptoAsset, level ThreatLevel) []string {
	var recs []string
	for _, r := range rules {
		if r.Applies(asset, level) {
			recs = append(recs, r.Advice...)
		}
	}
	return recs
}
