// Package wasi_snapshot_preview1 is the Syscall Dispatcher and Bootstrap:
// it exposes the ~45 WASI preview-1 entry points, each of which decodes
// its arguments through a Memory View, checks rights, delegates to a
// Device Driver, and translates the result into an Errno.
package wasi_snapshot_preview1

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/wasihost/core/internal/device"
	"github.com/wasihost/core/internal/fdtable"
	"github.com/wasihost/core/internal/fsapi"
	"github.com/wasihost/core/internal/hostio"
	"github.com/wasihost/core/internal/logging"
	"github.com/wasihost/core/internal/wasip1"
)

// DeviceKind selects which Driver variant a DeviceDescription instantiates.
type DeviceKind uint8

const (
	DeviceFilesystem DeviceKind = iota
	DeviceTerminal
	DeviceConsole
	DeviceNosys
)

// DeviceDescription is one entry of the process-scope device list: the
// host tells the core what to instantiate and where to mount it.
type DeviceDescription struct {
	Kind       DeviceKind
	URI        string
	MountPoint string // empty if not a pre-open
}

// Config is the immutable process-scope configuration consumed once by
// Bootstrap. If Args is empty, the guest sees a single argument, the
// placeholder "main"; Config carries no program name to use instead.
type Config struct {
	Args    []string
	Env     map[string]string
	Devices []DeviceDescription
	// Stdio maps fd 0, 1, 2 respectively to a device description.
	Stdio [3]DeviceDescription

	FS       hostio.FS
	Terminal hostio.Terminal
	Console  hostio.Console
	Clock    hostio.Clock
	Timer    hostio.Timer
	Crypto   hostio.Crypto

	ExitFunc func(rval uint32)
	Log      *logging.Logger
}

// Context is the dispatcher: the single mutable object the bootstrap
// builds and every entry point below is a method of.
type Context struct {
	fds      *fdtable.Table
	devices  map[uint64]fsapi.Driver
	fdDevice map[uint32]uint64 // fd -> owning device id, for driver lookup

	nextDeviceID uint64

	args       []string
	argsSize   uint32
	env        []string // pre-encoded "K=V" pairs, sorted for determinism
	envSize    uint32

	exitFunc func(rval uint32)
	clock    hostio.Clock
	timer    hostio.Timer
	crypto   hostio.Crypto
	log      *logging.Logger

	// pendingReaddir holds, per fd, the iterator left over from a
	// truncated fd_readdir call so the next call can resume it. A fresh
	// call with cookie=0 discards whatever is here.
	pendingReaddir map[uint32]fsapi.Readdir

	preopenWorklist []preopenEntry
}

type preopenEntry struct {
	deviceID uint64
	rootIno  uint64
	name     string
}

// NewContext allocates an empty dispatcher; call Bootstrap before serving
// any guest call.
func NewContext() *Context {
	return &Context{
		fds:            fdtable.New(),
		devices:        make(map[uint64]fsapi.Driver),
		fdDevice:       make(map[uint32]uint64),
		pendingReaddir: make(map[uint32]fsapi.Readdir),
	}
}

// Bootstrap runs the sequence described for process startup: install
// argv/envp, create the console driver, instantiate every configured
// device, wire stdio, and seed the pre-open worklist. It is executed
// exactly once per Context.
func (c *Context) Bootstrap(cfg Config) {
	c.exitFunc = cfg.ExitFunc
	c.clock = cfg.Clock
	c.timer = cfg.Timer
	c.crypto = cfg.Crypto
	c.log = cfg.Log

	c.args = cfg.Args
	if len(c.args) == 0 {
		c.args = []string{"main"}
	}
	for _, a := range c.args {
		c.argsSize += uint32(len(a)) + 1
	}

	keys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kv := k + "=" + cfg.Env[k]
		c.env = append(c.env, kv)
		c.envSize += uint32(len(kv)) + 1
	}

	consoleID := c.registerDevice(device.NewConsole(cfg.Console))

	type instantiated struct {
		deviceID uint64
		driver   fsapi.Driver
	}
	byKind := map[DeviceKind][]instantiated{}
	for _, dd := range cfg.Devices {
		id, drv := c.instantiate(dd, cfg)
		byKind[dd.Kind] = append(byKind[dd.Kind], instantiated{id, drv})
		if dd.MountPoint != "" {
			c.preopenWorklist = append(c.preopenWorklist, preopenEntry{
				deviceID: id,
				rootIno:  rootInoOf(drv, dd.URI),
				name:     dd.MountPoint,
			})
		}
	}

	stdioDeviceID := func(dd DeviceDescription) (uint64, fsapi.Driver, wasip1.Filetype) {
		switch dd.Kind {
		case DeviceFilesystem:
			id, drv := c.instantiate(dd, cfg)
			return id, drv, wasip1.FiletypeRegularFile
		case DeviceTerminal:
			id, drv := c.instantiate(dd, cfg)
			return id, drv, wasip1.FiletypeCharacterDevice
		default:
			return consoleID, c.devices[consoleID], wasip1.FiletypeCharacterDevice
		}
	}

	stdioRights := [3]wasip1.Rights{wasip1.StdinBase, wasip1.StdoutBase, wasip1.StdoutBase}
	for fd := uint32(0); fd < 3; fd++ {
		id, _, filetype := stdioDeviceID(cfg.Stdio[fd])
		c.fdDevice[fd] = id
		c.fds.InsertAt(fd, &fdtable.Entry{
			Kind:       fdtable.KindCharacterDevice,
			DeviceID:   id,
			Filetype:   filetype,
			RightsBase: stdioRights[fd],
		})
	}

	var highestPreopen uint32
	for _, pe := range c.preopenWorklist {
		fd := c.fds.Insert(&fdtable.Entry{
			Kind:             fdtable.KindDirectory,
			DeviceID:         pe.deviceID,
			InoID:            pe.rootIno,
			Filetype:         wasip1.FiletypeDirectory,
			RightsBase:       wasip1.DirectoryBase,
			RightsInheriting: wasip1.DirectoryInheriting,
		})
		c.fdDevice[fd] = pe.deviceID
		c.fds.SetMount(fd, pe.name)
		if fd > highestPreopen {
			highestPreopen = fd
		}
	}
	c.fds.ResetCounterAfterPreopens(highestPreopen)
}

func rootInoOf(drv fsapi.Driver, uri string) uint64 {
	if fs, ok := drv.(*device.Filesystem); ok {
		return fs.Root(uri)
	}
	return 0
}

func (c *Context) instantiate(dd DeviceDescription, cfg Config) (uint64, fsapi.Driver) {
	var drv fsapi.Driver
	switch dd.Kind {
	case DeviceFilesystem:
		mounts := []string{}
		if dd.MountPoint != "" {
			mounts = append(mounts, dd.MountPoint)
		}
		drv = device.NewFilesystem(cfg.FS, mounts)
	case DeviceTerminal:
		drv = device.NewTerminal(dd.URI, cfg.Terminal, dd.MountPoint)
	case DeviceConsole:
		drv = device.NewConsole(cfg.Console)
	default:
		drv = device.NewNosys()
	}
	return c.registerDevice(drv), drv
}

func (c *Context) registerDevice(drv fsapi.Driver) uint64 {
	c.nextDeviceID++
	id := c.nextDeviceID
	c.devices[id] = drv
	return id
}

// lookup resolves fd to its table entry and owning driver, or badf.
func (c *Context) lookup(fd uint32) (*fdtable.Entry, fsapi.Driver, wasip1.Errno) {
	e, ok := c.fds.Lookup(fd)
	if !ok {
		return nil, nil, wasip1.ErrnoBadf
	}
	drv, ok := c.devices[e.DeviceID]
	if !ok {
		return nil, nil, wasip1.ErrnoBadf
	}
	return e, drv, wasip1.ErrnoSuccess
}

// requireRights enforces invariant 1: every syscall needing capability
// want must see it as a subset of the descriptor's rights_base.
func requireRights(e *fdtable.Entry, want wasip1.Rights) wasip1.Errno {
	if !e.RightsBase.Has(want) {
		return wasip1.ErrnoPerm
	}
	return wasip1.ErrnoSuccess
}

func requireDir(e *fdtable.Entry) wasip1.Errno {
	if e.Kind != fdtable.KindDirectory {
		return wasip1.ErrnoNotdir
	}
	return wasip1.ErrnoSuccess
}

func (c *Context) trace(scope logging.Scopes, name string, fields logrus.Fields) {
	c.log.Trace(scope, name, fields)
}
