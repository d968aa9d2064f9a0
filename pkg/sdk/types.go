package rentprice

import "github.com/kailas-cloud/rentprice/internal/domain"

// Listing describes an apartment to price.
type Listing = domain.Listing

// Report is the fitted model summary: held-out quality and coefficients by feature name.
type Report = domain.Report

// FeatureColumns lists model inputs in coefficient order.
func FeatureColumns() []string {
	out := make([]string, len(domain.FeatureColumns))
	copy(out, domain.FeatureColumns[:])
	return out
}
