package gpio

import "github.com/sweeney/digit-matrix/internal/logic"

// buttonFor maps a line offset to its button. offsets is indexed by
// logic.Button.
func buttonFor(offsets [2]int, offset int) (logic.Button, bool) {
	switch offset {
	case offsets[logic.ButtonIncrement]:
		return logic.ButtonIncrement, true
	case offsets[logic.ButtonDecrement]:
		return logic.ButtonDecrement, true
	default:
		return 0, false
	}
}
