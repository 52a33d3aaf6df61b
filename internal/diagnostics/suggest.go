package diagnostics

// Suggest returns the candidate in candidates closest to name by edit
// distance, when that distance is within 2, or "" when no candidate is
// close enough. The checker uses it to add a "did you mean" hint to the
// undefined-variable and unknown-type messages; it never
// changes a type, a control-flow decision, or an error count (§4.13).
func Suggest(name string, candidates []string) string {
	best := ""
	bestDist := 3 // one past the accepted threshold
	for _, c := range candidates {
		d := levenshtein(name, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > 2 {
		return ""
	}
	return best
}

func levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	la, lb := len(ar), len(br)

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
