package pathing

import (
	"strconv"
	"strings"

	"github.com/cainus/mongojsonschema/tree"
)

// pointer builds concrete JSON Pointers while a path is walked. Extending a
// pointer never shares the backing array with the parent.
type pointer struct {
	parts []string
}

func (p pointer) Field(name string) pointer {
	return pointer{parts: append(append([]string{}, p.parts...), tree.PointerToken(name))}
}

func (p pointer) Index(i int) pointer {
	return pointer{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// String renders the pointer; the document root is "".
func (p pointer) String() string {
	if len(p.parts) == 0 {
		return ""
	}
	return "/" + strings.Join(p.parts, "/")
}
