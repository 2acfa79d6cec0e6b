package catalog

// Status derives the stock classification from raw stock and the reorder
// threshold. Pure and total; callers never set StockStatus directly.
func Status(stock, threshold int) StockStatus {
	switch {
	case stock <= 0:
		return StatusOutOfStock
	case stock <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}
