package timeline

// ActionClass tags what an action does to a component's continuous state.
// The mapping from component+action to class is declared once at setup
// instead of being re-derived from string literals inside resolution code.
type ActionClass int8

const (
	// ClassNone marks an unknown or inert action: it contributes nothing.
	ClassNone ActionClass = iota
	// ClassIncrease actions add a rising spring curve (e.g. "Expand").
	ClassIncrease
	// ClassDecrease actions subtract a rising spring curve (e.g. "Collapse").
	ClassDecrease
	// ClassPosition actions move the component toward a target coordinate.
	ClassPosition
)

// Sign returns the accumulation sign of the class: +1, -1, or 0.
func (c ActionClass) Sign() float64 {
	switch c {
	case ClassIncrease:
		return 1
	case ClassDecrease:
		return -1
	default:
		return 0
	}
}

type classKey struct {
	component string
	action    string
}

// Classifier is the declarative component+action → class mapping. An entry
// registered with component "" applies to every component that has no more
// specific entry for the same action.
type Classifier struct {
	classes map[classKey]ActionClass
}

// NewClassifier creates an empty classifier. Every action is inert until
// registered.
func NewClassifier() *Classifier {
	return &Classifier{classes: make(map[classKey]ActionClass, 8)}
}

// Set registers the class for an action on a component. Pass component ""
// to register a wildcard entry applying to all components.
func (cl *Classifier) Set(component, action string, class ActionClass) *Classifier {
	cl.classes[classKey{component, action}] = class
	return cl
}

// Class looks up the action's class for a component, falling back to the
// wildcard entry and then to ClassNone. Unknown actions are inert, never an
// error: registry validation is advisory and documents may reference
// components that are not currently registered.
func (cl *Classifier) Class(component, action string) ActionClass {
	if c, ok := cl.classes[classKey{component, action}]; ok {
		return c
	}
	if c, ok := cl.classes[classKey{"", action}]; ok {
		return c
	}
	return ClassNone
}

// DefaultClassifier returns the classification the glass panel uses:
// Expand/Collapse drive the signed size accumulator, MoveTo positions the
// panel. Registered as wildcards so any component id picks them up.
func DefaultClassifier() *Classifier {
	return NewClassifier().
		Set("", "Expand", ClassIncrease).
		Set("", "Collapse", ClassDecrease).
		Set("", "MoveTo", ClassPosition)
}

// Accumulate folds every increase/decrease event for the component that has
// fired by queryFrame into one bounded progress value.
//
// Each past event contributes its own spring curve evaluated at
// (queryFrame - event.Frame); future events contribute exactly 0 — there is
// no lookahead. Positive-class contributions are summed, negative-class
// contributions subtracted, and the result clamped to [0, 1]. Summing rather
// than restarting is what keeps repeated triggers from popping: a second
// Expand firing mid-animation stacks another rising curve on top of the
// first. Same-frame events all participate; the sum is commutative so ties
// need no ordering.
func Accumulate(events []Event, cl *Classifier, componentID string, queryFrame float64, fps int) float64 {
	var total float64
	for _, ev := range events {
		if ev.ComponentID != componentID {
			continue
		}
		sign := cl.Class(ev.ComponentID, ev.Action).Sign()
		if sign == 0 {
			continue
		}
		elapsed := queryFrame - float64(ev.Frame)
		if elapsed <= 0 {
			continue
		}
		total += sign * Progress(ev.SpringOrDefault(), elapsed, fps)
	}
	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}
