package usetree

// VisibilityKind discriminates the five forms an import's visibility
// modifier can take.
type VisibilityKind int

// VisThis (private, no `pub` at all) is the zero value, matching the
// default a bare `use` declaration actually has.
const (
	VisThis VisibilityKind = iota
	VisSuper
	VisIn
	VisCrate
	VisPublic
)

// Visibility is `pub`, `pub(crate)`, `pub(super)`, `pub(self)`,
// `pub(in <path>)`, or the absence of any `pub` at all (treated the same as
// VisThis: private to the current module).
type Visibility struct {
	Kind VisibilityKind
	Path SimplePath // only meaningful when Kind == VisIn
}

func PublicVisibility() Visibility { return Visibility{Kind: VisPublic} }
func CrateVisibility() Visibility  { return Visibility{Kind: VisCrate} }
func ThisVisibility() Visibility   { return Visibility{Kind: VisThis} }
func SuperVisibility() Visibility  { return Visibility{Kind: VisSuper} }
func InVisibility(path SimplePath) Visibility {
	return Visibility{Kind: VisIn, Path: path}
}

func (v Visibility) Equal(other Visibility) bool {
	if v.Kind != other.Kind {
		return false
	}
	if v.Kind == VisIn {
		return v.Path.Equal(other.Path)
	}
	return true
}

// rank gives the coarse strength of a visibility, strongest (most public)
// highest: This is weakest, then Super, then In(path), then Crate, and
// Public is always strongest.
func (v Visibility) rank() int {
	switch v.Kind {
	case VisThis:
		return 0
	case VisSuper:
		return 1
	case VisIn:
		return 2
	case VisCrate:
		return 3
	case VisPublic:
		return 4
	default:
		return 0
	}
}

// MergeVisibility combines the visibility of two `use` declarations of the
// same item into the single visibility their merged printing should carry:
// the more permissive of the two always wins. Between two `pub(in path)`
// forms the shorter path wins, since a shorter restricting path names a
// broader-reaching ancestor module.
func MergeVisibility(a, b Visibility) Visibility {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		if ra > rb {
			return a
		}
		return b
	}
	if a.Kind == VisIn && b.Kind == VisIn {
		if len(a.Path.Children) <= len(b.Path.Children) {
			return a
		}
		return b
	}
	return a
}
