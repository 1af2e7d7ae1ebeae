package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Status partition Tests
// ============================================================================

func TestPartitionLaundryOrders(t *testing.T) {
	orders := []LaundryOrder{
		{ID: 1, Status: LaundryPending},
		{ID: 2, Status: LaundryCompleted},
		{ID: 3, Status: LaundryProcessing},
		{ID: 4, Status: LaundryCancelled},
		{ID: 5, Status: LaundryReady},
	}

	active, history := PartitionLaundryOrders(orders)

	ids := func(os []LaundryOrder) []int64 {
		out := make([]int64, 0, len(os))
		for _, o := range os {
			out = append(out, o.ID)
		}
		return out
	}
	if diff := cmp.Diff([]int64{1, 3, 5}, ids(active)); diff != "" {
		t.Errorf("active mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{2, 4}, ids(history)); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestPartitionLaundryOrders_Empty(t *testing.T) {
	active, history := PartitionLaundryOrders(nil)
	assert.NotNil(t, active)
	assert.NotNil(t, history)
	assert.Empty(t, active)
	assert.Empty(t, history)
}

func TestIsActiveLaundryStatus(t *testing.T) {
	for _, s := range ActiveLaundryStatuses() {
		assert.True(t, IsActiveLaundryStatus(s), s)
	}
	assert.False(t, IsActiveLaundryStatus(LaundryCompleted))
	assert.False(t, IsActiveLaundryStatus(LaundryCancelled))
	assert.False(t, IsActiveLaundryStatus("lost"))
}

// ============================================================================
// Weight and pricing Tests
// ============================================================================

func TestParseWeight(t *testing.T) {
	w, err := ParseWeight(" 2.5 ")
	require.NoError(t, err)
	assert.True(t, w.Equal(decimal.RequireFromString("2.5")))

	for _, raw := range []string{"", "abc", "0", "-1", "1kg"} {
		_, err := ParseWeight(raw)
		assert.ErrorIs(t, err, ErrInvalidWeight, raw)
	}
}

func TestPerKgTotal_Exact(t *testing.T) {
	total := PerKgTotal(decimal.RequireFromString("4.50"), decimal.RequireFromString("3.3"))
	assert.Equal(t, "14.85", total.StringFixed(2))
}

// ============================================================================
// Manifest Tests
// ============================================================================

func TestManifest_AddMergesCounts(t *testing.T) {
	m := Manifest{}
	m.Add("T-shirt", 2)
	m.Add("T-shirt", 0)
	m.Add(" Socks ", 4)
	m.Add("  ", 3)

	assert.Equal(t, Manifest{"T-shirt": 3, "Socks": 4}, m)
	assert.Equal(t, 7, m.Total())
}

func TestManifest_Validate(t *testing.T) {
	assert.NoError(t, Manifest{"Shirt": 2, "Towel": 0}.Validate())
	assert.NoError(t, Manifest(nil).Validate())
	assert.ErrorIs(t, Manifest{"Shirt": -3}.Validate(), ErrInvalidManifest)
	assert.ErrorIs(t, Manifest{" ": 1}.Validate(), ErrInvalidManifest)
}

func TestManifest_Attachable(t *testing.T) {
	assert.Nil(t, Manifest{}.Attachable())
	assert.Nil(t, Manifest(nil).Attachable())
	assert.Nil(t, Manifest{"Towel": 0}.Attachable())
	assert.Equal(t, Manifest{"Dress": 1}, Manifest{"Dress": 1}.Attachable())
	assert.Equal(t, Manifest{"Shirt": 3}, Manifest{"Shirt": 1, " Shirt ": 2, "Sock": 0}.Attachable())
}
