package payroll

// ComputeContributions applies base × rate to every definition, in order.
// An override's base or rate, when set, replaces the resolved base or the
// default rate of the matching line. Nothing is rounded.
func ComputeContributions(defs []ContributionDefinition, bases Bases, overrides Overrides) []ContributionResult {
	results := make([]ContributionResult, 0, len(defs))
	for _, def := range defs {
		base := def.BaseRule.Resolve(bases)
		rate := def.DefaultRate
		if override, ok := overrides[def.Name]; ok {
			if override.Base != nil {
				base = *override.Base
			}
			if override.Rate != nil {
				rate = *override.Rate
			}
		}
		results = append(results, ContributionResult{
			Name:   def.Name,
			Base:   base,
			Rate:   rate,
			Amount: base * rate,
		})
	}
	return results
}

func sumAmounts(results []ContributionResult) float64 {
	total := 0.0
	for _, result := range results {
		total += result.Amount
	}
	return total
}
