package domain_test

import (
	"testing"

	"github.com/dibella/orderdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItems_AppendAddsEmptyItem(t *testing.T) {
	var items domain.LineItems
	items.Append()
	items.Append()

	require.Len(t, items, 2)
	assert.Equal(t, domain.LineItem{}, items[0])
	assert.Equal(t, domain.LineItem{}, items[1])
}

func TestLineItems_UpdateProductAndQuantity(t *testing.T) {
	items := domain.LineItems{{}}

	assert.True(t, items.Update(0, domain.FieldProductID, "5"))
	assert.True(t, items.Update(0, domain.FieldQuantity, "2"))

	assert.Equal(t, domain.LineItem{ProductID: 5, Quantity: 2}, items[0])
}

func TestLineItems_UpdateCoercesInput(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"3", 3},
		{" 4 ", 4},
		{"", 0},
		{"abc", 0},
		{"-2", 0},
		{"2.9", 2},
		{"1e2", 100},
		{"NaN", 0},
	}
	for _, tt := range tests {
		items := domain.LineItems{{ProductID: 1, Quantity: 7}}
		items.Update(0, domain.FieldQuantity, tt.value)
		assert.Equal(t, tt.want, items[0].Quantity, "value %q", tt.value)
		assert.Equal(t, domain.ProductID(1), items[0].ProductID, "other field untouched for %q", tt.value)
	}
}

func TestLineItems_UpdateOutOfRangeIsNoop(t *testing.T) {
	items := domain.LineItems{{ProductID: 1, Quantity: 1}}

	assert.False(t, items.Update(1, domain.FieldQuantity, "5"))
	assert.False(t, items.Update(-1, domain.FieldQuantity, "5"))
	assert.Equal(t, domain.LineItems{{ProductID: 1, Quantity: 1}}, items)

	var empty domain.LineItems
	assert.False(t, empty.Update(0, domain.FieldProductID, "1"))
	assert.Empty(t, empty)
}

func TestLineItems_UpdateUnknownFieldIsNoop(t *testing.T) {
	items := domain.LineItems{{ProductID: 1, Quantity: 1}}
	assert.False(t, items.Update(0, domain.Field(0), "5"))
	assert.Equal(t, domain.LineItem{ProductID: 1, Quantity: 1}, items[0])
}

func TestLineItems_RemoveShiftsLaterItems(t *testing.T) {
	items := domain.LineItems{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 2},
		{ProductID: 3, Quantity: 3},
		{ProductID: 4, Quantity: 4},
	}

	assert.True(t, items.Remove(1))

	assert.Equal(t, domain.LineItems{
		{ProductID: 1, Quantity: 1},
		{ProductID: 3, Quantity: 3},
		{ProductID: 4, Quantity: 4},
	}, items)
}

func TestLineItems_RemoveEveryIndex(t *testing.T) {
	original := domain.LineItems{{ProductID: 1}, {ProductID: 2}, {ProductID: 3}, {ProductID: 4}, {ProductID: 5}}
	for i := range original {
		items := original.Clone()
		require.True(t, items.Remove(i))
		require.Len(t, items, len(original)-1)
		for j := range items {
			if j < i {
				assert.Equal(t, original[j], items[j], "index %d before removed %d", j, i)
			} else {
				assert.Equal(t, original[j+1], items[j], "index %d after removed %d", j, i)
			}
		}
	}
}

func TestLineItems_RemoveOutOfRangeIsNoop(t *testing.T) {
	items := domain.LineItems{{ProductID: 1, Quantity: 1}}
	assert.False(t, items.Remove(1))
	assert.False(t, items.Remove(-1))
	assert.Len(t, items, 1)
}

func TestLineItems_CloneOfNilIsEmpty(t *testing.T) {
	var items domain.LineItems
	clone := items.Clone()
	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name string
		want domain.Field
	}{
		{"productId", domain.FieldProductID},
		{"ProductID", domain.FieldProductID},
		{"product_id", domain.FieldProductID},
		{"product-id", domain.FieldProductID},
		{"produtoId", domain.FieldProductID},
		{"product", domain.FieldProductID},
		{"quantity", domain.FieldQuantity},
		{"Quantity", domain.FieldQuantity},
		{"quantidade", domain.FieldQuantity},
		{"qty", domain.FieldQuantity},
	}
	for _, tt := range tests {
		got, err := domain.ParseField(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestParseField_Unknown(t *testing.T) {
	_, err := domain.ParseField("price")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"price"`)

	_, err = domain.ParseField("")
	assert.Error(t, err)
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "productId", domain.FieldProductID.String())
	assert.Equal(t, "quantity", domain.FieldQuantity.String())
	assert.Equal(t, "unknown", domain.Field(0).String())
}

func TestParseLineItem(t *testing.T) {
	item, err := domain.ParseLineItem(" 5 : 2 ")
	require.NoError(t, err)
	assert.Equal(t, domain.LineItem{ProductID: 5, Quantity: 2}, item)

	for _, bad := range []string{"5", "x:2", "5:x", "0:1", "5:0", "-1:2", "5:-2", ""} {
		_, err := domain.ParseLineItem(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseLineItems_SkipsBlankEntries(t *testing.T) {
	items, err := domain.ParseLineItems([]string{"5:2", " ", "3:1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.LineItem{{ProductID: 5, Quantity: 2}, {ProductID: 3, Quantity: 1}}, items)

	_, err = domain.ParseLineItems([]string{"5:2", "nope"})
	assert.Error(t, err)
}
