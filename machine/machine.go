// Package machine wires the register file, memory map, disk and CPU
// decoder into a single steppable unit, matching the core's
// two-phase synchronous cycle: Tick performs one combinational step
// then commits it, atomically, before returning.
package machine

import (
	"comp16/cpu"
	"comp16/disk"
	"comp16/memory"
	"comp16/register"
	"comp16/word"
)

// Machine owns every piece of state a running program can touch.
type Machine struct {
	Regs *register.File
	PC   *register.PC
	Mem  *memory.Map
	Disk *disk.Disk
	Dec  *cpu.Decoder

	shutdown bool
}

// New creates a Machine over a disk with the given sector count. The
// caller still must call LoadImage to put a program in RAM before
// Run/Tick does anything useful.
func New(diskSectors int) *Machine {
	return NewWithDisk(disk.New(diskSectors))
}

// NewWithDisk creates a Machine over an already-populated disk, e.g.
// one built from a linked loadable image via disk.NewFromWords.
func NewWithDisk(d *disk.Disk) *Machine {
	regs := &register.File{}
	pc := &register.PC{}
	mem := &memory.Map{}
	return &Machine{
		Regs: regs,
		PC:   pc,
		Mem:  mem,
		Disk: d,
		Dec:  cpu.NewDecoder(regs, pc, mem, d),
	}
}

// LoadImage writes words into RAM starting at address 0, e.g. a
// boot-mode program or a bootloader ROM.
func (m *Machine) LoadImage(words []word.Word) {
	m.Mem.LoadImage(words)
}

// Tick performs one full cycle: the decoder's combinational step,
// then the atomic commit of every component's staged write. It
// returns true once the shutdown opcode has fired, on this call or
// any earlier one.
func (m *Machine) Tick() (bool, error) {
	if m.shutdown {
		return true, nil
	}
	done, err := m.Dec.Step()
	if err != nil {
		return false, err
	}
	m.Regs.Tick()
	m.PC.Tick()
	m.Mem.Tick()
	m.Disk.Tick()
	m.shutdown = done
	return done, nil
}

// Run ticks until shutdown or error.
func (m *Machine) Run() error {
	for {
		done, err := m.Tick()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Reset forces the program counter back to zero without touching RAM,
// disk, or the register file, and clears the shutdown latch so Run
// can be called again.
func (m *Machine) Reset() {
	m.PC.Reset()
	m.Dec.Reset()
	m.shutdown = false
}

// Shutdown reports whether the machine has halted.
func (m *Machine) Shutdown() bool { return m.shutdown }

// Snapshot returns a read-only copy of memory state for an external
// observer, taken between ticks.
func (m *Machine) Snapshot() memory.Snapshot {
	return m.Mem.TakeSnapshot()
}
