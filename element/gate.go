package element

// Calculate evaluates a stateless Boolean gate's output as a pure
// function of its current incoming-signal map. It panics if called on
// an STE or counter — those have their own activation rules driven by
// the simulator, not a pure gate function.
func (e *Element) Calculate() bool {
	switch e.Kind {
	case KindAND:
		if len(e.Inputs) == 0 {
			return false
		}
		for _, v := range e.Inputs {
			if !v {
				return false
			}
		}
		return true
	case KindOR:
		for _, v := range e.Inputs {
			if v {
				return true
			}
		}
		return false
	case KindNOR, KindInverter:
		for _, v := range e.Inputs {
			if v {
				return false
			}
		}
		return true
	default:
		panic("element: Calculate called on non-gate kind " + e.Kind.String())
	}
}
