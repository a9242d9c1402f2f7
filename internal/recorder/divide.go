package recorder

func mergeSort(t *tape) {
	mergeRange(t, 0, t.Len(), true)
}

// mergeRange sorts [lo, hi). The merge is done in place: when the head of
// the right run is smaller, it is rotated down to i through adjacent swaps,
// so values only ever move through recorded swaps. In the outermost merge
// position i is final once the cursor passes it.
func mergeRange(t *tape, lo, hi int, outer bool) {
	if hi-lo < 2 {
		return
	}
	mid := lo + (hi-lo)/2
	mergeRange(t, lo, mid, false)
	mergeRange(t, mid, hi, false)

	i, j := lo, mid
	for i < j && j < hi {
		if t.compare(i, j) > 0 {
			for k := j; k > i; k-- {
				t.swap(k-1, k)
			}
			j++
		}
		if outer {
			t.finalize(i)
		}
		i++
	}
	if outer {
		for ; i < hi; i++ {
			t.finalize(i)
		}
	}
}

func quickSort(t *tape) {
	quickRange(t, 0, t.Len()-1)
}

func quickRange(t *tape, lo, hi int) {
	if lo > hi {
		return
	}
	if lo == hi {
		t.finalize(lo)
		return
	}
	p := partition(t, lo, hi)
	t.finalize(p)
	quickRange(t, lo, p-1)
	quickRange(t, p+1, hi)
}

func partition(t *tape, lo, hi int) int {
	store := lo
	for j := lo; j < hi; j++ {
		if t.compare(j, hi) < 0 {
			t.swap(store, j)
			store++
		}
	}
	t.swap(store, hi)
	return store
}

func heapSort(t *tape) {
	n := t.Len()
	for root := n/2 - 1; root >= 0; root-- {
		siftDown(t, root, n)
	}
	for end := n - 1; end > 0; end-- {
		t.swap(0, end)
		t.finalize(end)
		siftDown(t, 0, end)
	}
	t.finalize(0)
}

func siftDown(t *tape, root, end int) {
	for {
		child := 2*root + 1
		if child >= end {
			return
		}
		if child+1 < end && t.compare(child, child+1) < 0 {
			child++
		}
		if t.compare(root, child) >= 0 {
			return
		}
		t.swap(root, child)
		root = child
	}
}
