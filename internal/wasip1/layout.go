package wasip1

// Byte sizes of the fixed-layout structs exchanged with guest memory. See
// the field-by-field layout in memview.Filestat, memview.Fdstat, and
// friends: this file only pins the sizes, which other packages use for
// record strides and bounds errors.
const (
	FilestatSize           = 64
	FdstatSize             = 24
	PrestatSize            = 8
	IovecSize              = 8
	DirentSize             = 24
	EventSize              = 32
	SubscriptionSize       = 48
	SubscriptionClockSize  = 32
	SubscriptionFdSize     = 4
)
