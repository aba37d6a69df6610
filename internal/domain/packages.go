package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"market-client/internal/config"
)

func DefaultBoostPackages() []BoostPackage {
	return []BoostPackage{
		{ID: "basic", Name: "Basic boost", Days: 7, Price: decimal.RequireFromString("5.00")},
		{ID: "standard", Name: "Standard boost", Days: 15, Price: decimal.RequireFromString("9.00")},
		{ID: "premium", Name: "Premium boost", Days: 30, Price: decimal.RequireFromString("15.00")},
	}
}

// BoostPackagesFromConfig returns the configured catalog, or the default one
// when nothing is configured.
func BoostPackagesFromConfig(cfg config.BoostConfig) ([]BoostPackage, error) {
	if len(cfg.Packages) == 0 {
		return DefaultBoostPackages(), nil
	}

	packages := make([]BoostPackage, 0, len(cfg.Packages))
	for _, p := range cfg.Packages {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("boost package %q: invalid price: %w", p.ID, err)
		}
		if p.ID == "" || p.Days <= 0 || !price.IsPositive() {
			return nil, fmt.Errorf("boost package %q: id, days and price are required", p.ID)
		}
		packages = append(packages, BoostPackage{ID: p.ID, Name: p.Name, Days: p.Days, Price: price})
	}
	return packages, nil
}

func FindBoostPackage(packages []BoostPackage, id string) (BoostPackage, bool) {
	for _, p := range packages {
		if p.ID == id {
			return p, true
		}
	}
	return BoostPackage{}, false
}
