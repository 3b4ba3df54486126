package models

// NormalizeCartItems returns a copy of items with non-positive quantities
// removed. Setting a quantity to zero is how an entry is deleted.
func NormalizeCartItems(items map[string]int) map[string]int {
	normalized := make(map[string]int, len(items))
	for id, qty := range items {
		if qty > 0 {
			normalized[id] = qty
		}
	}
	return normalized
}

// MergeCartItems merges a locally cached cart into the persisted one on
// session start. The server copy is the base; local entries override on
// conflict, and a local zero removes the entry.
func MergeCartItems(server, local map[string]int) map[string]int {
	merged := make(map[string]int, len(server)+len(local))
	for id, qty := range server {
		merged[id] = qty
	}
	for id, qty := range local {
		merged[id] = qty
	}
	return NormalizeCartItems(merged)
}
