package wasip1

// Oflags control the semantics of path_open: creation, exclusivity,
// truncation, and directory-only resolution.
type Oflags uint16

const (
	OflagsCreat     Oflags = 1 << 0
	OflagsDirectory Oflags = 1 << 1
	OflagsExcl      Oflags = 1 << 2
	OflagsTrunc     Oflags = 1 << 3
)

// Has reports whether all bits of want are set in f.
func (f Oflags) Has(want Oflags) bool { return f&want == want }

// Fdflags control descriptor-level read/write behavior.
type Fdflags uint16

const (
	FdflagsAppend   Fdflags = 1 << 0
	FdflagsDsync    Fdflags = 1 << 1
	FdflagsNonblock Fdflags = 1 << 2
	FdflagsRsync    Fdflags = 1 << 3
	FdflagsSync     Fdflags = 1 << 4
)

func (f Fdflags) Has(want Fdflags) bool { return f&want == want }

// Lookupflags control path resolution.
type Lookupflags uint32

const LookupflagsSymlinkFollow Lookupflags = 1 << 0

func (f Lookupflags) Has(want Lookupflags) bool { return f&want == want }

// Fstflags selects which timestamp fields a filestat_set_times call
// updates, and whether they are set to "now" or an explicit value.
type Fstflags uint16

const (
	FstflagsAtim    Fstflags = 1 << 0
	FstflagsAtimNow Fstflags = 1 << 1
	FstflagsMtim    Fstflags = 1 << 2
	FstflagsMtimNow Fstflags = 1 << 3
)

func (f Fstflags) Has(want Fstflags) bool { return f&want == want }

// Rights is a 64-bit bitmask of descriptor capabilities. A syscall that
// needs capability X must see X as a subset of the descriptor's
// rights_base before touching a driver.
type Rights uint64

const (
	RightFdDatasync Rights = 1 << iota
	RightFdRead
	RightFdSeek
	RightFdFdstatSetFlags
	RightFdSync
	RightFdTell
	RightFdWrite
	RightFdAdvise
	RightFdAllocate
	RightPathCreateDirectory
	RightPathCreateFile
	RightPathLinkSource
	RightPathLinkTarget
	RightPathOpen
	RightFdReaddir
	RightPathReadlink
	RightPathRenameSource
	RightPathRenameTarget
	RightPathFilestatGet
	RightPathFilestatSetSize
	RightPathFilestatSetTimes
	RightFdFilestatGet
	RightFdFilestatSetSize
	RightFdFilestatSetTimes
	RightPathSymlink
	RightPathRemoveDirectory
	RightPathUnlinkFile
	RightPollFdReadwrite
	RightSockShutdown
	RightSockAccept
)

// Has reports whether every bit of want is present in r.
func (r Rights) Has(want Rights) bool { return r&want == want }

var (
	// FileBase is the right set available to an open regular file.
	FileBase = RightFdDatasync | RightFdRead | RightFdSeek | RightFdFdstatSetFlags |
		RightFdSync | RightFdTell | RightFdWrite | RightFdAdvise | RightFdAllocate |
		RightFdFilestatGet | RightFdFilestatSetSize | RightFdFilestatSetTimes |
		RightPollFdReadwrite

	// DirectoryBase is the right set available to an open directory,
	// independent of what its children inherit.
	DirectoryBase = RightFdFdstatSetFlags | RightFdSync | RightFdAdvise |
		RightPathCreateDirectory | RightPathCreateFile | RightPathLinkSource |
		RightPathLinkTarget | RightPathOpen | RightFdReaddir | RightPathReadlink |
		RightPathRenameSource | RightPathRenameTarget | RightPathFilestatGet |
		RightPathFilestatSetSize | RightPathFilestatSetTimes | RightFdFilestatGet |
		RightPathSymlink | RightPathRemoveDirectory | RightPathUnlinkFile

	// DirectoryInheriting is handed to descriptors opened under a
	// directory: the union of what a child file and a child directory
	// could need.
	DirectoryInheriting = DirectoryBase | FileBase

	// CharacterDeviceBase covers both the terminal and console drivers.
	CharacterDeviceBase = RightFdRead | RightFdWrite | RightFdFdstatSetFlags |
		RightPollFdReadwrite

	// StdinBase is narrower than CharacterDeviceBase: no write right.
	StdinBase = RightFdRead | RightFdFdstatSetFlags | RightPollFdReadwrite

	// StdoutBase is narrower than CharacterDeviceBase: no read right.
	StdoutBase = RightFdWrite | RightFdFdstatSetFlags | RightPollFdReadwrite
)

// DirectoryOnly are the bits that only make sense on a directory
// descriptor; they are stripped when narrowing rights for a file child.
var DirectoryOnly = Rights(DirectoryBase &^ FileBase)

// FileOnly are the bits that only make sense on a file descriptor; they
// are stripped when narrowing rights for a directory child.
var FileOnly = Rights(FileBase &^ DirectoryBase)
