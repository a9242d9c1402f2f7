package recorder

func selectionSort(t *tape) {
	n := t.Len()
	for i := 0; i < n; i++ {
		smallest := i
		for j := i; j < n; j++ {
			if t.compare(smallest, j) > 0 {
				smallest = j
			}
		}
		t.swap(smallest, i)
		t.finalize(i)
	}
}

func bubbleSort(t *tape) {
	n := t.Len()
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			if t.compare(j, j+1) > 0 {
				t.swap(j, j+1)
				swapped = true
			}
		}
		t.finalize(n - 1 - i)
		if !swapped {
			for k := n - 2 - i; k >= 0; k-- {
				t.finalize(k)
			}
			return
		}
	}
	t.finalize(0)
}

// insertionSort cannot know any final position before the last pass, so
// every position is finalized at the end.
func insertionSort(t *tape) {
	n := t.Len()
	for i := 1; i < n; i++ {
		for j := i; j > 0 && t.compare(j-1, j) > 0; j-- {
			t.swap(j-1, j)
		}
	}
	for i := 0; i < n; i++ {
		t.finalize(i)
	}
}
