package closematch

// saisSort returns the suffix array of text, whose symbols lie in
// [0, alphabet). The final symbol must be a unique maximum (the EOS), which
// makes the ordering identical to one where EOS compares greater than
// everything.
//
// Induced sorting wants a unique minimum at the end instead, so every symbol
// is lifted by one and an explicit 0 terminator is appended. The terminator
// always sorts first and is dropped from the result.
func saisSort(text []int64, alphabet int64) []int64 {
	n := len(text)
	lifted := make([]int64, n+1)
	for i, c := range text {
		lifted[i] = c + 1
	}

	sa := make([]int64, n+1)
	sais(lifted, sa, alphabet)

	copy(sa, sa[1:])
	return sa[:n]
}

// sais stores into sa the suffix array of text. Symbols lie in [0, k] and the
// last symbol must be the only 0.
func sais(text, sa []int64, k int64) {
	n := len(text)
	if n == 1 {
		sa[0] = 0
		return
	}

	// stype[i] is true when suffix i is smaller than suffix i+1.
	stype := make([]bool, n)
	stype[n-1] = true
	for i := n - 2; i >= 0; i-- {
		stype[i] = text[i] < text[i+1] || (text[i] == text[i+1] && stype[i+1])
	}
	isLMS := func(i int) bool {
		return i > 0 && stype[i] && !stype[i-1]
	}

	bucket := make([]int64, k+1)

	// Sort LMS-substrings: drop LMS positions at the ends of their
	// buckets and induce.
	bucketEnds(text, bucket)
	for i := range sa {
		sa[i] = -1
	}
	for i := 1; i < n; i++ {
		if isLMS(i) {
			c := text[i]
			bucket[c]--
			sa[bucket[c]] = int64(i)
		}
	}
	induce(text, sa, stype, bucket)

	// Compact the sorted LMS positions into sa[:n1].
	n1 := 0
	for i := 0; i < n; i++ {
		if isLMS(int(sa[i])) {
			sa[n1] = sa[i]
			n1++
		}
	}

	// Name the LMS-substrings. Positions are at least two apart, so pos/2
	// is a collision-free slot in sa[n1:].
	for i := n1; i < n; i++ {
		sa[i] = -1
	}
	name := int64(0)
	prev := -1
	for i := 0; i < n1; i++ {
		pos := int(sa[i])
		diff := false
		for d := 0; d < n; d++ {
			if prev == -1 || text[pos+d] != text[prev+d] || stype[pos+d] != stype[prev+d] {
				diff = true
				break
			}
			if d > 0 && (isLMS(pos+d) || isLMS(prev+d)) {
				break
			}
		}
		if diff {
			name++
			prev = pos
		}
		sa[n1+pos/2] = name - 1
	}
	for i, j := n-1, n-1; i >= n1; i-- {
		if sa[i] >= 0 {
			sa[j] = sa[i]
			j--
		}
	}

	// Sort the reduced string. The terminator's substring is the only one
	// named 0 and it comes last, so the reduced string keeps the invariant.
	sa1, s1 := sa[:n1], sa[n-n1:]
	if name < int64(n1) {
		sais(s1, sa1, name-1)
	} else {
		for i := 0; i < n1; i++ {
			sa1[s1[i]] = int64(i)
		}
	}

	// Seed the buckets with the sorted LMS-suffixes and induce the rest.
	bucketEnds(text, bucket)
	for i, j := 1, 0; i < n; i++ {
		if isLMS(i) {
			s1[j] = int64(i)
			j++
		}
	}
	for i := 0; i < n1; i++ {
		sa1[i] = s1[sa1[i]]
	}
	for i := n1; i < n; i++ {
		sa[i] = -1
	}
	for i := n1 - 1; i >= 0; i-- {
		pos := sa[i]
		sa[i] = -1
		c := text[pos]
		bucket[c]--
		sa[bucket[c]] = pos
	}
	induce(text, sa, stype, bucket)
}

// induce fills in L-type suffixes scanning left to right, then S-type
// suffixes scanning right to left.
func induce(text, sa []int64, stype []bool, bucket []int64) {
	n := len(text)

	bucketStarts(text, bucket)
	for i := 0; i < n; i++ {
		if sa[i] <= 0 {
			continue
		}
		j := sa[i] - 1
		if !stype[j] {
			c := text[j]
			sa[bucket[c]] = j
			bucket[c]++
		}
	}

	bucketEnds(text, bucket)
	for i := n - 1; i >= 0; i-- {
		if sa[i] <= 0 {
			continue
		}
		j := sa[i] - 1
		if stype[j] {
			c := text[j]
			bucket[c]--
			sa[bucket[c]] = j
		}
	}
}

// bucketStarts stores into bucket[c] the first index of c's bucket.
func bucketStarts(text, bucket []int64) {
	clear(bucket)
	for _, c := range text {
		bucket[c]++
	}
	var total int64
	for c, n := range bucket {
		bucket[c] = total
		total += n
	}
}

// bucketEnds stores into bucket[c] one past the last index of c's bucket.
func bucketEnds(text, bucket []int64) {
	clear(bucket)
	for _, c := range text {
		bucket[c]++
	}
	var total int64
	for c, n := range bucket {
		total += n
		bucket[c] = total
	}
}
