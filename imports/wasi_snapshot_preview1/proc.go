package wasi_snapshot_preview1

// ProcExit terminates the guest execution context: it invokes the
// configured exit callback with rval and never returns a value to the
// guest. Callers at the host-embedding boundary are expected to stop
// scheduling further calls into this Context once this returns.
func (c *Context) ProcExit(rval uint32) {
	if c.exitFunc != nil {
		c.exitFunc(rval)
	}
}
