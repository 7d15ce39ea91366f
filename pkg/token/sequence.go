package token

// DominantField returns the most common field in the sequence.
// Ties resolve in canonical field order. Returns false for an empty sequence.
func DominantField(tokens []Token) (Field, bool) {
	if len(tokens) == 0 {
		return "", false
	}
	counts := make(map[Field]int, 3)
	for _, t := range tokens {
		counts[t.Field]++
	}
	best := Fields()[0]
	for _, f := range Fields() {
		if counts[f] > counts[best] {
			best = f
		}
	}
	return best, true
}

// TruthEvolution returns the truth state of each token in order.
func TruthEvolution(tokens []Token) []TruthState {
	states := make([]TruthState, len(tokens))
	for i, t := range tokens {
		states[i] = t.Truth
	}
	return states
}

// FieldComplete reports whether the sequence touches all three fields.
func FieldComplete(tokens []Token) bool {
	seen := make(map[Field]bool, 3)
	for _, t := range tokens {
		seen[t.Field] = true
	}
	return len(seen) == 3
}
