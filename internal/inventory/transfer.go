package inventory

// Transfer moves qty units of t from src to dst. Either the whole quantity
// moves or neither store changes.
func Transfer(src, dst *Store, t ResourceType, qty int) bool {
	if qty <= 0 || src == dst {
		return false
	}
	if src.Quantity(t) < qty || !dst.CanAdd(t, qty) {
		return false
	}
	if !src.Remove(t, qty) {
		return false
	}
	if !dst.Add(t, qty) {
		// Roll back so the source is left exactly as it was.
		src.Add(t, qty)
		return false
	}
	return true
}

// TransferAll moves every held type in full, skipping types that do not fit.
// It returns the quantities that moved.
func TransferAll(src, dst *Store) map[ResourceType]int {
	moved := make(map[ResourceType]int)
	for _, t := range src.Types() {
		qty := src.Quantity(t)
		if Transfer(src, dst, t, qty) {
			moved[t] = qty
		}
	}
	return moved
}

// TransferAllPossible moves as much of each type as still fits in dst.
// Types are visited in ascending order; earlier types may use up the space.
func TransferAllPossible(src, dst *Store) map[ResourceType]int {
	moved := make(map[ResourceType]int)
	for _, t := range src.Types() {
		qty := min(src.Quantity(t), dst.AvailableSpace())
		if qty <= 0 {
			continue
		}
		if Transfer(src, dst, t, qty) {
			moved[t] = qty
		}
	}
	return moved
}

// RefineYield returns the minerals produced by qty units of ore. Fractions
// are floored per mineral.
func RefineYield(ore ResourceType, qty int) map[ResourceType]int {
	out := make(map[ResourceType]int)
	for mineral, pct := range RefiningRates[ore] {
		if n := qty * pct / 100; n > 0 {
			out[mineral] = n
		}
	}
	return out
}

// Refine consumes qty ore from src and stores the mineral yield in dst.
// Nothing changes unless src holds the ore and the whole yield fits.
func Refine(src, dst *Store, ore ResourceType, qty int) (map[ResourceType]int, bool) {
	if !ore.IsOre() || qty <= 0 || src.Quantity(ore) < qty {
		return nil, false
	}
	yield := RefineYield(ore, qty)
	total := 0
	for _, n := range yield {
		total += n
	}
	if total > dst.AvailableSpace() {
		return nil, false
	}
	if !src.Remove(ore, qty) {
		return nil, false
	}
	added := make([]ResourceType, 0, len(yield))
	for mineral, n := range yield {
		if !dst.Add(mineral, n) {
			for _, m := range added {
				dst.Remove(m, yield[m])
			}
			src.Add(ore, qty)
			return nil, false
		}
		added = append(added, mineral)
	}
	return yield, true
}
