package closematch

// dc3Sort returns the suffix array of the first n symbols of padded, a
// working array whose symbols lie in [0, alphabet) and whose n-th symbol is
// followed by numPadding zeros.
//
// The skew algorithm reads triples past the end of the text, which is what
// the zero padding is for. Real symbols are lifted by one so that no symbol
// of the text ever equals the padding.
func dc3Sort(padded []int64, n int, alphabet int64) []int64 {
	t := make([]int, n+numPadding)
	for i := 0; i < n; i++ {
		t[i] = int(padded[i]) + 1
	}
	for i := n; i < n+numPadding; i++ {
		t[i] = int(padded[i])
	}

	sa := make([]int, n)
	if n == 1 {
		sa[0] = 0
	} else {
		dc3(t, sa, n, int(alphabet))
	}

	out := make([]int64, n)
	for i, p := range sa {
		out[i] = int64(p)
	}
	return out
}

// lexicographic order for pairs
func leq2(a1, a2, b1, b2 int) bool {
	return a1 < b1 || (a1 == b1 && a2 <= b2)
}

// lexicographic order for triples
func leq3(a1, a2, a3, b1, b2, b3 int) bool {
	return a1 < b1 || (a1 == b1 && leq2(a2, a3, b2, b3))
}

// radixPass stably sorts a[:n] into b[:n] using keys r[a[i]] in [0, k].
func radixPass(a, b, r []int, n, k int) {
	count := make([]int, k+1)
	for i := 0; i < n; i++ {
		count[r[a[i]]]++
	}

	sum := 0
	for i := range count {
		count[i], sum = sum, sum+count[i]
	}

	for i := 0; i < n; i++ {
		key := r[a[i]]
		b[count[key]] = a[i]
		count[key]++
	}
}

// dc3 stores into sa the suffix array of t[:n], t in [1, k]^n.
// It requires t[n] = t[n+1] = t[n+2] = 0 and n >= 2.
func dc3(t, sa []int, n, k int) {
	n0 := (n + 2) / 3
	n1 := (n + 1) / 3
	n2 := n / 3
	n02 := n0 + n2

	r := make([]int, n02+3)
	sa12 := make([]int, n02+3)
	r0 := make([]int, n0)
	sa0 := make([]int, n0)

	// Positions of the mod 1 and mod 2 suffixes. The extra iteration when
	// n%3 == 1 adds a dummy mod 1 suffix made only of padding.
	for i, j := 0, 0; i < n+(n0-n1); i++ {
		if i%3 != 0 {
			r[j] = i
			j++
		}
	}

	// Radix sort the sample triples.
	radixPass(r, sa12, t[2:], n02, k)
	radixPass(sa12, r, t[1:], n02, k)
	radixPass(r, sa12, t, n02, k)

	// Name the triples, mod 1 names first, mod 2 names after.
	name := 0
	c0, c1, c2 := -1, -1, -1
	for i := 0; i < n02; i++ {
		p := sa12[i]
		if t[p] != c0 || t[p+1] != c1 || t[p+2] != c2 {
			name++
			c0, c1, c2 = t[p], t[p+1], t[p+2]
		}
		if p%3 == 1 {
			r[p/3] = name
		} else {
			r[p/3+n0] = name
		}
	}

	if name < n02 {
		dc3(r, sa12, n02, name)
		for i := 0; i < n02; i++ {
			r[sa12[i]] = i + 1
		}
	} else {
		for i := 0; i < n02; i++ {
			sa12[r[i]-1] = i
		}
	}

	// Sort the mod 0 suffixes by first symbol, then by the rank of the
	// mod 1 suffix that follows.
	for i, j := 0, 0; i < n02; i++ {
		if sa12[i] < n0 {
			r0[j] = 3 * sa12[i]
			j++
		}
	}
	radixPass(r0, sa0, t, n0, k)

	// Merge. The dummy, when present, is sa12[0] and is skipped.
	pos12 := func(s int) int {
		if sa12[s] < n0 {
			return sa12[s]*3 + 1
		}
		return (sa12[s]-n0)*3 + 2
	}
	p, s := 0, n0-n1
	for out := 0; out < n; out++ {
		i := pos12(s)
		j := sa0[p]

		var less bool
		if sa12[s] < n0 {
			less = leq2(t[i], r[sa12[s]+n0], t[j], r[j/3])
		} else {
			less = leq3(t[i], t[i+1], r[sa12[s]-n0+1], t[j], t[j+1], r[j/3+n0])
		}

		if less {
			sa[out] = i
			s++
			if s == n02 {
				for out++; p < n0; p, out = p+1, out+1 {
					sa[out] = sa0[p]
				}
			}
		} else {
			sa[out] = j
			p++
			if p == n0 {
				for out++; s < n02; s, out = s+1, out+1 {
					sa[out] = pos12(s)
				}
			}
		}
	}
}
