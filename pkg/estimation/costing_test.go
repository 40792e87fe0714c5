package estimation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Run("should apply contingency on top of the subtotal", func(t *testing.T) {
		categories := []CostCategory{
			{Name: "Labor", Items: []CostItem{
				{Name: "Development", Cost: Labor{Hours: 10, Rate: 50}},
			}},
		}

		totals := ComputeTotals(categories, 10)

		assert.Equal(t, 500.0, totals.Subtotal)
		assert.Equal(t, 50.0, totals.ContingencyAmount)
		assert.Equal(t, 550.0, totals.FinalCost)
	})

	t.Run("should sum items across categories and shapes", func(t *testing.T) {
		categories := []CostCategory{
			{Name: "Labor", Items: []CostItem{
				{Name: "Development", Cost: Labor{Hours: 100, Rate: 50}},
				{Name: "Design", Cost: Labor{Hours: 20, Rate: 40}},
			}},
			{Name: "Materials", Items: []CostItem{
				{Name: "Licenses", Cost: Material{Quantity: 10, UnitCost: 20}},
			}},
			{Name: "Overhead", Items: []CostItem{
				{Name: "Office", Cost: Overhead{Months: 2, MonthlyCost: 300}},
			}},
		}

		totals := ComputeTotals(categories, 0)

		assert.Equal(t, 6600.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.ContingencyAmount)
		assert.Equal(t, 6600.0, totals.FinalCost)
	})

	t.Run("should return zeros for an empty breakdown", func(t *testing.T) {
		totals := ComputeTotals(nil, 15)

		assert.Equal(t, 0.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.ContingencyAmount)
		assert.Equal(t, 0.0, totals.FinalCost)
	})

	t.Run("should count items without a cost shape as zero", func(t *testing.T) {
		categories := []CostCategory{
			{Name: "Misc", Items: []CostItem{
				{Name: "Unpriced"},
				{Name: "Priced", Cost: Material{Quantity: 2, UnitCost: 25}},
			}},
		}

		totals := ComputeTotals(categories, 0)

		assert.Equal(t, 50.0, totals.Subtotal)
	})
}

func TestCategoryTotal(t *testing.T) {
	category := CostCategory{Name: "Labor", Items: []CostItem{
		{Name: "Development", Cost: Labor{Hours: 8, Rate: 100}},
		{Name: "Review", Cost: Labor{Hours: 2, Rate: 100}},
	}}

	assert.Equal(t, 1000.0, CategoryTotal(category))
	assert.Equal(t, 0.0, CategoryTotal(CostCategory{Name: "Empty"}))
}

func TestComputeProgress(t *testing.T) {
	t.Run("should round the completed share to the nearest percent", func(t *testing.T) {
		phases := []Phase{
			{Name: "Discovery", Status: PhaseCompleted},
			{Name: "Build", Status: PhasePlanned},
			{Name: "Handover", Status: PhaseCompleted},
		}

		assert.Equal(t, 67, ComputeProgress(phases))
	})

	t.Run("should return 0 for an empty timeline", func(t *testing.T) {
		assert.Equal(t, 0, ComputeProgress(nil))
		assert.Equal(t, 0, ComputeProgress([]Phase{}))
	})

	t.Run("should return 100 when every phase is completed", func(t *testing.T) {
		phases := []Phase{
			{Name: "Discovery", Status: PhaseCompleted},
			{Name: "Build", Status: PhaseCompleted},
		}

		assert.Equal(t, 100, ComputeProgress(phases))
	})

	t.Run("should treat unknown phase statuses as not completed", func(t *testing.T) {
		phases := []Phase{
			{Name: "Discovery", Status: PhaseCompleted},
			{Name: "Build", Status: PhaseStatus("paused")},
		}

		assert.Equal(t, 50, ComputeProgress(phases))
	})
}
