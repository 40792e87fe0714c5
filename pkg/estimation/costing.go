package estimation

import "math"

// Totals is the result of aggregating a cost breakdown.
type Totals struct {
	Subtotal          float64
	ContingencyAmount float64
	FinalCost         float64
}

// CategoryTotal sums the line item totals of a single category. An empty
// category totals to zero.
func CategoryTotal(category CostCategory) float64 {
	total := 0.0
	for _, item := range category.Items {
		total += item.Total()
	}
	return total
}

// ComputeTotals reduces the full breakdown into subtotal, contingency amount
// and final cost. The contingency percent is expected to be validated to
// [0, 100] by the caller; it is applied as given here.
func ComputeTotals(categories []CostCategory, contingencyPercent float64) Totals {
	subtotal := 0.0
	for _, category := range categories {
		subtotal += CategoryTotal(category)
	}
	contingencyAmount := subtotal * contingencyPercent / 100
	return Totals{
		Subtotal:          subtotal,
		ContingencyAmount: contingencyAmount,
		FinalCost:         subtotal + contingencyAmount,
	}
}

// ComputeProgress derives percent complete from the timeline phases:
// round(100 * completed / total), 0 for an empty list. Unknown statuses
// count as not completed.
func ComputeProgress(phases []Phase) int {
	if len(phases) == 0 {
		return 0
	}
	completed := 0
	for _, phase := range phases {
		if phase.Status == PhaseCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(phases))))
}
