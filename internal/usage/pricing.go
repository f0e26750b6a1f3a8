package usage

import "strings"

// ModelPricing holds $ per 1M tokens for each token category.
type ModelPricing struct {
	Input     float64
	Output    float64
	CacheRead float64
}

// pricingTable maps model identifier substrings to their pricing row.
// Matched in order; unknown models fall back to defaultPricing.
var pricingTable = []struct {
	match   string
	pricing ModelPricing
}{
	{"claude-opus", ModelPricing{Input: 15.0, Output: 75.0, CacheRead: 1.50}},
	{"claude-sonnet", ModelPricing{Input: 3.0, Output: 15.0, CacheRead: 0.30}},
	{"claude-3-5-sonnet", ModelPricing{Input: 3.0, Output: 15.0, CacheRead: 0.30}},
	{"claude-haiku", ModelPricing{Input: 0.80, Output: 4.0, CacheRead: 0.08}},
	{"claude-3-5-haiku", ModelPricing{Input: 0.80, Output: 4.0, CacheRead: 0.08}},
}

var defaultPricing = ModelPricing{Input: 3.0, Output: 15.0, CacheRead: 0.30}

// PricingFor returns the pricing row for a model identifier.
func PricingFor(model string) ModelPricing {
	lower := strings.ToLower(model)
	for _, entry := range pricingTable {
		if strings.Contains(lower, entry.match) {
			return entry.pricing
		}
	}
	return defaultPricing
}

// CalculateCost computes the dollar cost of a token usage breakdown.
// Cost is linear and additive per category.
func CalculateCost(model string, inputTokens, outputTokens, cacheReadTokens int) float64 {
	p := PricingFor(model)
	return float64(inputTokens)/1_000_000*p.Input +
		float64(outputTokens)/1_000_000*p.Output +
		float64(cacheReadTokens)/1_000_000*p.CacheRead
}
