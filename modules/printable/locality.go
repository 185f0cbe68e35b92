// Package printable turns the normalized import groups produced by
// modules/usetree into formatted Rust `use` statement text, ordered and
// spaced the way rustfmt-adjacent tooling in this ecosystem expects.
package printable

// CrateLocality buckets an import by how "close" its root is, for sorting
// purposes: the standard library sorts first, then external crates, then
// increasingly local references.
type CrateLocality int

const (
	LocalityStandardLib CrateLocality = iota
	LocalityDependency
	LocalityCrate
	LocalitySuper
	LocalityThis
)

func localityOf(rootIdent string) CrateLocality {
	switch rootIdent {
	case "std", "core", "alloc":
		return LocalityStandardLib
	case "crate":
		return LocalityCrate
	case "super":
		return LocalitySuper
	case "self":
		return LocalityThis
	default:
		return LocalityDependency
	}
}
