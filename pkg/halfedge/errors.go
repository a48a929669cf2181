package halfedge

import (
	"errors"
	"fmt"
)

// Sentinel errors for mesh construction and queries.
var (
	// ErrAttributeLength is returned when a per-corner normal or texture
	// coordinate array does not have one entry per face corner.
	ErrAttributeLength = errors.New("per-corner attribute count does not match face degree")

	// ErrNonmanifoldEdge is returned when a face would claim a directed edge
	// that already belongs to another face.
	ErrNonmanifoldEdge = errors.New("nonmanifold edge")

	// ErrDegenerateFace is returned for faces with fewer than three corners or
	// a vertex that appears more than once.
	ErrDegenerateFace = errors.New("degenerate face")

	// ErrInvalidIndex is returned for negative vertex indices.
	ErrInvalidIndex = errors.New("invalid vertex index")

	// ErrFinalized is returned when a face is added after ids were assigned.
	ErrFinalized = errors.New("mesh is finalized and cannot be modified")

	// ErrAlreadyInitialized is returned when a finalization pass runs twice.
	ErrAlreadyInitialized = errors.New("finalization pass already ran")

	// ErrNotInitialized is returned when a finalization pass or the finalized
	// mesh is requested before the passes it depends on.
	ErrNotInitialized = errors.New("finalization pass has not run")

	// ErrIsolatedVertex is returned when walking the ring of a vertex that no
	// face references.
	ErrIsolatedVertex = errors.New("vertex has no incident halfedge")

	// ErrBrokenRing is returned when a ring walk reaches an unlinked halfedge or
	// does not return to its start.
	ErrBrokenRing = errors.New("halfedge ring is not closed")

	// ErrInvalidHandle is returned for handles outside their arena.
	ErrInvalidHandle = errors.New("invalid element handle")

	// ErrInvariant is returned by Validate when the mesh topology is
	// inconsistent.
	ErrInvariant = errors.New("mesh invariant violated")
)

// FaceError describes a rejected face insertion. It unwraps to one of the
// sentinel errors above.
type FaceError struct {
	Kind error
	// From and To identify the offending directed edge for ErrNonmanifoldEdge.
	From, To int
	// Got and Want are the attribute and corner counts for ErrAttributeLength.
	Got, Want int
	// Attribute names the per-corner array for ErrAttributeLength.
	Attribute string
	// Index is the offending vertex index for ErrInvalidIndex and ErrDegenerateFace.
	Index int
}

func (e *FaceError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrNonmanifoldEdge):
		return fmt.Sprintf("%v at (%d, %d)", e.Kind, e.From, e.To)
	case errors.Is(e.Kind, ErrAttributeLength):
		return fmt.Sprintf("%v: %d %s for %d corners", e.Kind, e.Got, e.Attribute, e.Want)
	case errors.Is(e.Kind, ErrInvalidIndex):
		return fmt.Sprintf("%v: %d", e.Kind, e.Index)
	case errors.Is(e.Kind, ErrDegenerateFace) && e.Want > 0:
		return fmt.Sprintf("%v: %d corners, need at least %d", e.Kind, e.Got, e.Want)
	case errors.Is(e.Kind, ErrDegenerateFace):
		return fmt.Sprintf("%v: vertex %d repeated", e.Kind, e.Index)
	default:
		return e.Kind.Error()
	}
}

func (e *FaceError) Unwrap() error {
	return e.Kind
}

// mustHold panics when an internal invariant of the construction code does not
// hold. It never fires for bad input.
func mustHold(what string, ok bool) {
	if !ok {
		panic(fmt.Sprintf("halfedge: internal consistency violation: %s", what))
	}
}
