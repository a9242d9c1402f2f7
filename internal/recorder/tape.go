package recorder

import "github.com/san-kum/sortviz/internal/anim"

// tape is the recorder's private working copy. Every operation an algorithm
// performs goes through it, so the log and the values never diverge.
type tape struct {
	values anim.Values
	log    anim.Log
}

func newTape(values anim.Values) *tape {
	return &tape{
		values: values.Clone(),
		log:    make(anim.Log, 0, len(values)*4),
	}
}

func (t *tape) Len() int { return len(t.values) }

// compare records compare(i, j) and returns -1, 0 or +1 as values[i] is
// less than, equal to or greater than values[j].
func (t *tape) compare(i, j int) int {
	t.log = append(t.log, anim.Compare(i, j))
	switch a, b := t.values[i], t.values[j]; {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (t *tape) swap(i, j int) {
	t.log = append(t.log, anim.Swap(i, j))
	t.values[i], t.values[j] = t.values[j], t.values[i]
}

func (t *tape) finalize(i int) {
	t.log = append(t.log, anim.Finalize(i))
}
