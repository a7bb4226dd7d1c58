package device

import "github.com/wasihost/core/internal/fsapi"

// Nosys is the Device Driver variant with no overrides at all: every
// operation returns ErrnoNosys. It backs descriptors for device kinds the
// host described but that this module does not know how to drive, and is
// the template every other variant generalizes from.
type Nosys struct {
	fsapi.Unimplemented
}

func NewNosys() *Nosys { return &Nosys{} }

var _ fsapi.Driver = (*Nosys)(nil)
var _ fsapi.Driver = (*Filesystem)(nil)
var _ fsapi.Driver = (*Terminal)(nil)
var _ fsapi.Driver = (*Console)(nil)
