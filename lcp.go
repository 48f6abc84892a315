package closematch

// Kasai's algorithm for building the LCP array in O(n) time.
// lcp[i] is the length of the common prefix of the suffixes at sa[i] and
// sa[i+1]; rank is the inverse permutation of sa.
func BuildLCPArray(sa []int64, text []int64) (lcp []int, rank []int) {
	n := len(sa)
	rank = make([]int, n)
	for i, pos := range sa {
		rank[pos] = i
	}
	if n == 0 {
		return nil, rank
	}

	lcp = make([]int, n-1)
	l := 0
	for i := 0; i < n; i++ {
		if rank[i]+1 == n {
			l = 0
			continue
		}
		j := int(sa[rank[i]+1])
		for i+l < len(text) && j+l < len(text) && text[i+l] == text[j+l] {
			l++
		}
		lcp[rank[i]] = l
		if l > 0 {
			l--
		}
	}

	return lcp, rank
}
