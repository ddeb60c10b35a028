// Package register implements the machine's edge-triggered storage:
// a plain 16-bit Register, and a Register-backed program counter with
// load/increment/reset control inputs.
package register

import "comp16/word"

// A Register holds a current value and a staged next value. Write
// only stages a new value when load is asserted; Tick promotes the
// staged value to current. Reading before Tick always observes the
// pre-tick (current) value, even if Write was already called this
// cycle.
type Register struct {
	current word.Word
	next    word.Word
	loaded  bool
}

// Read returns the register's current value.
func (r *Register) Read() word.Word { return r.current }

// Write stages value as the next current value if load is true.
// Multiple writes within one cycle collapse to the last call that
// asserted load.
func (r *Register) Write(value word.Word, load bool) {
	if load {
		r.next = value
		r.loaded = true
	}
}

// Tick promotes the staged value to current. If no load occurred
// since the last Tick, the register holds its value.
func (r *Register) Tick() {
	if r.loaded {
		r.current = r.next
		r.loaded = false
	}
}

// Reset immediately clears both current and staged state to zero,
// bypassing the usual load/tick sequencing.
func (r *Register) Reset() {
	r.current = 0
	r.next = 0
	r.loaded = false
}

// PC is the program counter: a Register plus reset, load and
// increment control inputs, evaluated with fixed priority
// reset > load > inc > hold.
type PC struct {
	reg Register
}

// Read returns the program counter's current value.
func (p *PC) Read() word.Word { return p.reg.Read() }

// Write stages the control inputs for this cycle. loadValue is used
// only if load is asserted and reset is not. At most one of reset,
// load, inc takes effect per the documented priority.
func (p *PC) Write(loadValue word.Word, load, inc, reset bool) {
	switch {
	case reset:
		p.reg.Write(0, true)
	case load:
		p.reg.Write(loadValue, true)
	case inc:
		p.reg.Write(p.reg.Read()+1, true)
	}
}

// Tick promotes the staged program counter value to current.
func (p *PC) Tick() { p.reg.Tick() }

// Reset forces the program counter back to 0 immediately, without
// waiting for a Tick.
func (p *PC) Reset() { p.reg.Reset() }

// File is the machine's five addressable general-purpose registers:
// a, b, c, d and the stack pointer sp.
type File struct {
	A, B, C, D, SP Register
}

// Tick promotes every register in the file.
func (f *File) Tick() {
	f.A.Tick()
	f.B.Tick()
	f.C.Tick()
	f.D.Tick()
	f.SP.Tick()
}
