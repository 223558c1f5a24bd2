package domain

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Field names an editable column of a line item.
type Field int

const (
	FieldProductID Field = iota + 1
	FieldQuantity
)

func (f Field) String() string {
	switch f {
	case FieldProductID:
		return "productId"
	case FieldQuantity:
		return "quantity"
	default:
		return "unknown"
	}
}

// fieldAliases maps the normalized word sequence of a field name to its Field.
// Both the API's English names and the legacy Portuguese wire names are accepted.
var fieldAliases = map[string]Field{
	"productid":  FieldProductID,
	"product":    FieldProductID,
	"produtoid":  FieldProductID,
	"produto":    FieldProductID,
	"id":         FieldProductID,
	"quantity":   FieldQuantity,
	"qty":        FieldQuantity,
	"quantidade": FieldQuantity,
}

// ParseField resolves a field name regardless of its casing convention:
// productId, ProductID, product_id and product-id all name FieldProductID.
func ParseField(name string) (Field, error) {
	var b strings.Builder
	for _, word := range camelcase.Split(strings.TrimSpace(name)) {
		if !isWord(word) {
			continue
		}
		b.WriteString(strings.ToLower(word))
	}
	if f, ok := fieldAliases[b.String()]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("unknown line item field %q (valid: productId, quantity)", name)
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// LineItems is the ordered, index-addressable line-item collection of one
// in-progress order. Indices are positions, not identities: they shift after
// Remove.
type LineItems []LineItem

// Append adds an empty line item (no product, zero quantity).
func (l *LineItems) Append() {
	*l = append(*l, LineItem{})
}

// Update replaces the item at index with one field changed. value is coerced
// to a non-negative integer; anything unparseable becomes 0. An out-of-range
// index is a no-op and Update reports false.
func (l *LineItems) Update(index int, field Field, value string) bool {
	if index < 0 || index >= len(*l) {
		return false
	}
	item := (*l)[index]
	switch field {
	case FieldProductID:
		item.ProductID = ProductID(coerceInt(value))
	case FieldQuantity:
		item.Quantity = int(coerceInt(value))
	default:
		return false
	}
	(*l)[index] = item
	return true
}

// Remove deletes the slot at index, shifting later items left. An
// out-of-range index is a no-op and Remove reports false.
func (l *LineItems) Remove(index int) bool {
	if index < 0 || index >= len(*l) {
		return false
	}
	items := *l
	copy(items[index:], items[index+1:])
	*l = items[:len(items)-1]
	return true
}

// Clone returns an independent copy. A nil collection clones to an empty one.
func (l LineItems) Clone() LineItems {
	out := make(LineItems, len(l))
	copy(out, l)
	return out
}

// coerceInt parses form input the way a numeric input field would: blank or
// malformed input is 0, fractional input is truncated, negatives clamp to 0.
func coerceInt(value string) int64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return max(n, 0)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != f || f < 0 || f > float64(1<<53) {
		return 0
	}
	return int64(f)
}

// ParseLineItem reads a complete line item written as PRODUCT:QUANTITY,
// e.g. "5:2". Unlike Update it is strict: both parts must be positive
// integers.
func ParseLineItem(s string) (LineItem, error) {
	product, quantity, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return LineItem{}, fmt.Errorf("invalid item %q (want PRODUCT:QUANTITY)", s)
	}
	pid, err := strconv.ParseInt(strings.TrimSpace(product), 10, 64)
	if err != nil || pid <= 0 {
		return LineItem{}, fmt.Errorf("invalid product id in item %q", s)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil || qty <= 0 {
		return LineItem{}, fmt.Errorf("invalid quantity in item %q", s)
	}
	return LineItem{ProductID: ProductID(pid), Quantity: qty}, nil
}

// ParseLineItems reads every entry with ParseLineItem. Empty entries are
// skipped so "5:2," and "5:2" are equivalent.
func ParseLineItems(entries []string) ([]LineItem, error) {
	items := make([]LineItem, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e) == "" {
			continue
		}
		item, err := ParseLineItem(e)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
