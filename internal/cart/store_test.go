package cart

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajathahamed/Unilifmobile/internal/domain"
)

func item(id int64, price string, vendor int64) domain.CartItem {
	return domain.CartItem{
		ID:         id,
		Name:       "item",
		Price:      decimal.RequireFromString(price),
		VendorID:   vendor,
		VendorName: "vendor",
	}
}

// ============================================================================
// AddItem Tests
// ============================================================================

func TestAddItem_NewItem(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "10.00", 5))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestAddItem_SameIDIncrements(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "10.00", 5))
	s.AddItem(item(1, "10.00", 5))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "20.00", s.TotalAmount().StringFixed(2))
}

func TestAddItem_IgnoresCandidateQuantity(t *testing.T) {
	s := NewStore()
	c := item(1, "1.00", 5)
	c.Quantity = 9
	s.AddItem(c)
	assert.Equal(t, 1, s.TotalCount())
}

func TestAddItem_AcceptsSecondVendor(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "1.00", 5))
	s.AddItem(item(2, "1.00", 6))

	assert.Equal(t, []int64{5, 6}, s.Snapshot().VendorIDs)
	assert.Equal(t, 2, s.TotalCount())
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddItem(item(3, "1.00", 5))
	s.AddItem(item(1, "1.00", 5))
	s.AddItem(item(2, "1.00", 5))
	s.AddItem(item(3, "1.00", 5))

	var ids []int64
	for _, it := range s.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

// ============================================================================
// RemoveItem / UpdateQuantity / Clear Tests
// ============================================================================

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "1.00", 5))
	s.AddItem(item(2, "2.00", 5))

	s.RemoveItem(1)
	s.RemoveItem(99)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ID)
}

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "2.50", 5))
	s.AddItem(item(1, "2.50", 5))

	s.UpdateQuantity(1, 3)
	assert.Equal(t, 3, s.TotalCount())
	assert.Equal(t, "7.50", s.TotalAmount().StringFixed(2))
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, n := range []int{0, -1} {
		s := NewStore()
		s.AddItem(item(1, "2.50", 5))
		s.UpdateQuantity(1, n)
		assert.Empty(t, s.Items(), "n=%d", n)
	}
}

func TestUpdateQuantity_UnknownIDIgnored(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "2.50", 5))
	s.UpdateQuantity(42, 7)
	assert.Equal(t, 1, s.TotalCount())
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "2.50", 5))
	s.AddItem(item(2, "4.00", 6))

	s.Clear()

	assert.Empty(t, s.Items())
	assert.True(t, s.TotalAmount().IsZero())
	assert.Zero(t, s.TotalCount())
	assert.Empty(t, s.Snapshot().VendorIDs)
}

func TestRemoveLines_KeepsLaterAdditions(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "1.50", 5))
	s.AddItem(item(1, "1.50", 5))
	s.AddItem(item(2, "2.20", 5))
	ordered := s.Snapshot().Items

	s.AddItem(item(1, "1.50", 5))
	s.AddItem(item(9, "3.00", 5))

	s.RemoveLines(ordered)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(9), items[1].ID)
	assert.Equal(t, "4.50", s.TotalAmount().StringFixed(2))
}

func TestRemoveLines_DropsFullyOrderedAndIgnoresMissing(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "1.00", 5))
	s.AddItem(item(2, "1.00", 5))
	lines := s.Items()

	s.RemoveItem(2)
	s.RemoveLines(lines)

	assert.Empty(t, s.Items())
}

// ============================================================================
// Totals Tests
// ============================================================================

func TestTotalAmount_NoFloatDrift(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "0.10", 5))
	s.AddItem(item(2, "0.20", 5))
	assert.True(t, s.TotalAmount().Equal(decimal.RequireFromString("0.3")))
}

func TestTotals_ConsistentAfterEveryOperation(t *testing.T) {
	faker := gofakeit.New(42)
	s := NewStore()
	model := map[int64]domain.CartItem{}

	check := func() {
		t.Helper()
		wantCount := 0
		wantAmount := decimal.Zero
		for _, it := range model {
			wantCount += it.Quantity
			wantAmount = wantAmount.Add(it.Subtotal())
		}
		assert.Equal(t, wantCount, s.TotalCount())
		assert.True(t, wantAmount.Equal(s.TotalAmount()), "want %s got %s", wantAmount, s.TotalAmount())

		got := map[int64]domain.CartItem{}
		for _, it := range s.Items() {
			got[it.ID] = it
		}
		if diff := cmp.Diff(model, got, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
			t.Fatalf("cart diverged (-model +store):\n%s", diff)
		}
	}

	for step := 0; step < 300; step++ {
		id := int64(faker.IntRange(1, 6))
		switch faker.IntRange(0, 2) {
		case 0:
			price := decimal.NewFromFloat(faker.Price(1, 30)).Round(2)
			c := domain.CartItem{ID: id, Name: faker.Word(), Price: price, VendorID: 1}
			if existing, ok := model[id]; ok {
				existing.Quantity++
				model[id] = existing
			} else {
				c.Quantity = 1
				model[id] = c
			}
			s.AddItem(c)
		case 1:
			n := faker.IntRange(-2, 5)
			if existing, ok := model[id]; ok {
				if n <= 0 {
					delete(model, id)
				} else {
					existing.Quantity = n
					model[id] = existing
				}
			}
			s.UpdateQuantity(id, n)
		case 2:
			delete(model, id)
			s.RemoveItem(id)
		}
		check()
	}
}

func TestSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem(item(1, "10.00", 5))
	s.AddItem(item(1, "10.00", 5))
	s.AddItem(item(2, "3.50", 5))

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.TotalCount)
	assert.Equal(t, "RM 23.50", snap.TotalAmount.String())
	assert.Equal(t, []int64{5}, snap.VendorIDs)

	snap.Items[0].Quantity = 100
	assert.Equal(t, 3, s.TotalCount())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(item(1, "1.00", 5))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.TotalCount())
}
