package dyncodec

import "fmt"

// Lifecycle marks how much a decoded or encoded value could still change:
// Experimental dominates everything, Deprecated carries the version the
// deprecation started at (earlier wins), and Stable is the weakest state.
// Every combinator propagates lifecycles by joining them with Add.
type Lifecycle struct {
	kind  lifecycleKind
	since int
}

type lifecycleKind int

const (
	lifecycleStable lifecycleKind = iota
	lifecycleDeprecated
	lifecycleExperimental
)

// Stable returns the weakest lifecycle. It is the zero value, so results
// constructed without an explicit lifecycle are stable.
func Stable() Lifecycle { return Lifecycle{} }

// Experimental returns the dominant lifecycle.
func Experimental() Lifecycle { return Lifecycle{kind: lifecycleExperimental} }

// DeprecatedSince marks a value deprecated starting at the given version.
func DeprecatedSince(since int) Lifecycle {
	return Lifecycle{kind: lifecycleDeprecated, since: since}
}

// Add joins two lifecycles, keeping the one with the greater breakage
// potential. Among two deprecations the earlier since wins.
func (l Lifecycle) Add(other Lifecycle) Lifecycle {
	if l.kind == lifecycleExperimental || other.kind == lifecycleExperimental {
		return Experimental()
	}
	if l.kind == lifecycleDeprecated && other.kind == lifecycleDeprecated {
		if other.since < l.since {
			return other
		}
		return l
	}
	if l.kind == lifecycleDeprecated {
		return l
	}
	if other.kind == lifecycleDeprecated {
		return other
	}
	return Stable()
}

// IsExperimental reports whether the lifecycle is Experimental.
func (l Lifecycle) IsExperimental() bool { return l.kind == lifecycleExperimental }

// IsStable reports whether the lifecycle is Stable.
func (l Lifecycle) IsStable() bool { return l.kind == lifecycleStable }

// DeprecationVersion returns the since version and whether the lifecycle is
// a deprecation.
func (l Lifecycle) DeprecationVersion() (int, bool) {
	return l.since, l.kind == lifecycleDeprecated
}

func (l Lifecycle) String() string {
	switch l.kind {
	case lifecycleExperimental:
		return "experimental"
	case lifecycleDeprecated:
		return fmt.Sprintf("deprecated since %d", l.since)
	default:
		return "stable"
	}
}
