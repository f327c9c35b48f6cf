package restable

// VisibilityLevel is whether a resource is part of a package's stable API.
type VisibilityLevel uint8

const (
	VisibilityUndefined VisibilityLevel = iota
	VisibilityPrivate
	VisibilityPublic
)

// Visibility carries a visibility level plus the resource ID pinned to it
// when Public (spec.md §3 invariant 2).
type Visibility struct {
	Level      VisibilityLevel
	PinnedID   *ID
	Comment    string
	StagedAPI  bool
	StagingGroup string
}

// Stricter returns the higher of two visibility levels (Public over
// Private over Undefined), used
// when the merger reconciles a type's visibility across inputs
// (spec.md §4.5 step 2: "Public wins").
func Stricter(a, b VisibilityLevel) VisibilityLevel {
	if a == VisibilityPublic || b == VisibilityPublic {
		return VisibilityPublic
	}
	if a == VisibilityPrivate || b == VisibilityPrivate {
		return VisibilityPrivate
	}
	return VisibilityUndefined
}
