package wasip1

// Function names as they appear on the WASI preview-1 host import namespace.
// The dispatcher uses these for trace logging; the entry
// points themselves are plain Go methods.
const (
	ArgsGetName         = "args_get"
	ArgsSizesGetName    = "args_sizes_get"
	EnvironGetName      = "environ_get"
	EnvironSizesGetName = "environ_sizes_get"

	ClockResGetName  = "clock_res_get"
	ClockTimeGetName = "clock_time_get"

	FdAdviseName          = "fd_advise"
	FdAllocateName        = "fd_allocate"
	FdCloseName           = "fd_close"
	FdDatasyncName        = "fd_datasync"
	FdFdstatGetName       = "fd_fdstat_get"
	FdFdstatSetFlagsName  = "fd_fdstat_set_flags"
	FdFilestatGetName     = "fd_filestat_get"
	FdFilestatSetSizeName = "fd_filestat_set_size"
	FdFilestatSetTimesName = "fd_filestat_set_times"
	FdPreadName           = "fd_pread"
	FdPrestatGetName      = "fd_prestat_get"
	FdPrestatDirNameName  = "fd_prestat_dir_name"
	FdPwriteName          = "fd_pwrite"
	FdReadName            = "fd_read"
	FdReaddirName         = "fd_readdir"
	FdSeekName            = "fd_seek"
	FdSyncName            = "fd_sync"
	FdTellName            = "fd_tell"
	FdWriteName           = "fd_write"

	PathCreateDirectoryName  = "path_create_directory"
	PathFilestatGetName      = "path_filestat_get"
	PathFilestatSetTimesName = "path_filestat_set_times"
	PathLinkName             = "path_link"
	PathOpenName             = "path_open"
	PathReadlinkName         = "path_readlink"
	PathRemoveDirectoryName  = "path_remove_directory"
	PathRenameName           = "path_rename"
	PathSymlinkName          = "path_symlink"
	PathUnlinkFileName       = "path_unlink_file"

	PollOneoffName = "poll_oneoff"
	ProcExitName   = "proc_exit"
	SchedYieldName = "sched_yield"
	RandomGetName  = "random_get"

	SockAcceptName   = "sock_accept"
	SockRecvName     = "sock_recv"
	SockSendName     = "sock_send"
	SockShutdownName = "sock_shutdown"
)

// Clockid identifies which clock clock_res_get/clock_time_get reads from.
type Clockid uint32

const (
	ClockidRealtime Clockid = iota
	ClockidMonotonic
	ClockidProcessCputime
	ClockidThreadCputime
)

// Filetype is the type tag stored in filestat, fdstat, and dirent.
type Filetype uint8

const (
	FiletypeUnknown Filetype = iota
	FiletypeBlockDevice
	FiletypeCharacterDevice
	FiletypeDirectory
	FiletypeRegularFile
	FiletypeSocketDgram
	FiletypeSocketStream
	FiletypeSymbolicLink
)

// Whence is the fd_seek origin.
type Whence uint8

const (
	WhenceSet Whence = iota
	WhenceCur
	WhenceEnd
)

// EventType tags a poll_oneoff event/subscription payload.
type EventType uint8

const (
	EventTypeClock EventType = iota
	EventTypeFdRead
	EventTypeFdWrite
)

// Eventrwflags is the set of flags returned alongside an fd_read/fd_write
// event.
type Eventrwflags uint16

const EventrwflagsFdReadwriteHangup Eventrwflags = 1 << 0

// Subclockflags controls whether a clock subscription's timeout is
// absolute or relative.
type Subclockflags uint16

const SubscriptionClockAbstime Subclockflags = 1 << 0
