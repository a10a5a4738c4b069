package checker

// suggest returns a "did you mean" hint when a candidate name is within a
// small edit distance of the unknown name. Very short names match too
// easily, so the allowed distance scales with length.
func suggest(name string, candidates []string) string {
	maxDist := 1
	if len(name) > 4 {
		maxDist = 2
	}

	best := ""
	bestDist := maxDist + 1
	for _, c := range candidates {
		if c == name {
			continue
		}
		d := levenshtein(name, c)
		if d < bestDist {
			best = c
			bestDist = d
		}
	}

	if best == "" {
		return ""
	}
	return "did you mean '" + best + "'?"
}

func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
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
