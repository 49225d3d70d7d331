package geom

import (
	"fmt"
	"strconv"
)

// InvalidGeometryError is returned by constructors when the supplied parts
// cannot form a geometry of the requested type.
type InvalidGeometryError struct {
	Type   Type
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	if e.Type != 0 {
		return fmt.Sprintf("invalid geometry (%v): %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("invalid geometry: %s", e.Reason)
}

func itoa(i int) string { return strconv.Itoa(i) }
