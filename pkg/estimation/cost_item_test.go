package estimation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostItem_MarshalJSON(t *testing.T) {
	item := CostItem{Name: "Development", Cost: Labor{Hours: 10, Rate: 50}}

	data, err := json.Marshal(item)

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Development","type":"labor","hours":10,"rate":50,"total":500}`, string(data))
}

func TestCostItem_UnmarshalJSON(t *testing.T) {
	t.Run("should pick the variant from the type discriminator", func(t *testing.T) {
		var item CostItem
		err := json.Unmarshal([]byte(`{"name":"Office","type":"overhead","months":3,"monthlyCost":200}`), &item)

		require.NoError(t, err)
		assert.Equal(t, Overhead{Months: 3, MonthlyCost: 200}, item.Cost)
		assert.Equal(t, 600.0, item.Total())
	})

	t.Run("should infer the variant from populated fields when type is absent", func(t *testing.T) {
		var item CostItem
		err := json.Unmarshal([]byte(`{"name":"Licenses","quantity":4,"unitCost":25}`), &item)

		require.NoError(t, err)
		assert.Equal(t, Material{Quantity: 4, UnitCost: 25}, item.Cost)
		assert.Equal(t, 100.0, item.Total())
	})

	t.Run("should leave the cost nil when no shape is present", func(t *testing.T) {
		var item CostItem
		err := json.Unmarshal([]byte(`{"name":"Unpriced"}`), &item)

		require.NoError(t, err)
		assert.Nil(t, item.Cost)
		assert.Equal(t, 0.0, item.Total())
	})

	t.Run("should survive a marshal round trip", func(t *testing.T) {
		original := CostItem{Name: "Development", Cost: Labor{Hours: 8, Rate: 120}}

		data, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded CostItem
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, original, decoded)
	})
}
