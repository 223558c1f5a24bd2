package domain

// ValidateLineItems checks that an order is submittable: at least one line
// item, and every item has a selected product and a positive quantity.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return &ValidationError{Reason: ReasonNoLineItems, Index: -1}
	}
	for i, item := range items {
		if !item.IsComplete() {
			return &ValidationError{Reason: ReasonIncompleteLineItem, Index: i}
		}
	}
	return nil
}
