// Package cpu implements the machine's central component: the
// instruction decoder. One Step call performs one cycle's worth of
// fetch, operand select, dispatch and writeback, combinationally.
// Register, PC, memory and disk-sector writes are staged and only take
// effect on the next Tick; a disk word write lands immediately, as
// disk.Access defines, and the decoder's own flags and shutdown latch
// are updated in place.
package cpu

import (
	"comp16/alu"
	"comp16/disk"
	"comp16/isa"
	"comp16/memory"
	"comp16/register"
	"comp16/word"
)

// Flags holds the three status bits latched by ALU-class opcodes.
type Flags struct {
	Zero, Negative, Overflow bool
}

// Decoder drives one register file, one memory map, one disk and a
// program counter through the instruction cycle described above. It
// holds no storage of its own beyond the status flags and the
// shutdown latch.
type Decoder struct {
	Regs *register.File
	PC   *register.PC
	Mem  *memory.Map
	Disk *disk.Disk

	Flags    Flags
	shutdown bool
}

// NewDecoder wires a Decoder to the given components.
func NewDecoder(regs *register.File, pc *register.PC, mem *memory.Map, dsk *disk.Disk) *Decoder {
	return &Decoder{Regs: regs, PC: pc, Mem: mem, Disk: dsk}
}

// Shutdown reports whether the shutdown opcode has been observed.
// Once true it stays true; Step becomes a no-op.
func (d *Decoder) Shutdown() bool { return d.shutdown }

// Reset clears the status flags and the shutdown latch. It does not
// touch the program counter, which the caller resets separately. (The
// ClassReset opcode, by contrast, only forces the PC to 0.)
func (d *Decoder) Reset() {
	d.Flags = Flags{}
	d.shutdown = false
}

// Step performs one combinational cycle and stages every resulting
// write. It returns true once the shutdown opcode has been decoded
// (on this call or any earlier one), and a non-nil error only for a
// disk access outside the backing store.
func (d *Decoder) Step() (bool, error) {
	if d.shutdown {
		return true, nil
	}

	pc := d.PC.Read()
	instr := d.Mem.Read(pc)
	dec := isa.Decode(instr)

	// Trailing constant words follow the instruction word in target,
	// then source, order (the order the parser emits them in).
	next := pc + 1
	var targetConstant word.Word
	if dec.A.Selector == isa.SelConst {
		targetConstant = d.Mem.Read(next)
		next++
	}
	var sourceConstant word.Word
	if dec.B.Selector == isa.SelConst {
		sourceConstant = d.Mem.Read(next)
		next++
	}

	sourceRaw, sourceConst := d.selectRaw(dec.B, sourceConstant)
	targetRaw, targetConst := d.selectRaw(dec.A, targetConstant)

	sourceValue := sourceRaw
	if dec.B.Pointer {
		sourceValue = d.Mem.Read(sourceRaw)
	}
	targetValue := targetRaw
	if dec.A.Pointer {
		targetValue = d.Mem.Read(targetRaw)
	}

	consumed := word.Word(1)
	if sourceConst {
		consumed++
	}
	if targetConst {
		consumed++
	}
	nextPC := pc + consumed
	advance := func() { d.PC.Write(nextPC, true, false, false) }

	switch dec.Class {
	case isa.ClassReset:
		d.PC.Write(0, false, false, true)

	case isa.ClassShutdown:
		d.shutdown = true

	case isa.ClassMoveHDD:
		switch dec.Sub {
		case isa.SubHDDRead:
			v, err := d.Disk.Access(sourceValue, false, 0, false)
			if err != nil {
				return false, err
			}
			d.writeback(dec.A, targetRaw, v)
		case isa.SubHDDWrite:
			if _, err := d.Disk.Access(sourceValue, false, targetValue, true); err != nil {
				return false, err
			}
		case isa.SubHDDSector:
			if _, err := d.Disk.Access(sourceValue, true, 0, false); err != nil {
				return false, err
			}
		default: // move
			d.writeback(dec.A, targetRaw, sourceValue)
		}
		advance()

	case isa.ClassStack:
		sp := d.Regs.SP.Read()
		if dec.Sub&0x8 != 0 { // push
			newSP := sp - 1
			d.Mem.Write(newSP, sourceValue, true)
			d.Regs.SP.Write(newSP, true)
		} else { // pop
			v := d.Mem.Read(sp)
			d.writeback(dec.A, targetRaw, v)
			d.Regs.SP.Write(sp+1, true)
		}
		advance()

	case isa.ClassJump:
		switch dec.Sub {
		case isa.SubReturn:
			sp := d.Regs.SP.Read()
			d.PC.Write(d.Mem.Read(sp), true, false, false)
			d.Regs.SP.Write(sp+1, true)
		case isa.SubCall:
			sp := d.Regs.SP.Read()
			newSP := sp - 1
			d.Mem.Write(newSP, nextPC, true)
			d.Regs.SP.Write(newSP, true)
			d.PC.Write(sourceValue, true, false, false)
		default: // unconditional jump
			d.PC.Write(sourceValue, true, false, false)
		}

	case isa.ClassJumpNeg:
		if d.Flags.Negative {
			d.PC.Write(sourceValue, true, false, false)
		} else {
			advance()
		}

	case isa.ClassJumpZero:
		if d.Flags.Zero {
			d.PC.Write(sourceValue, true, false, false)
		} else {
			advance()
		}

	case isa.ClassJumpOvf:
		if d.Flags.Overflow {
			d.PC.Write(sourceValue, true, false, false)
		} else {
			advance()
		}

	case isa.ClassALUCmp, isa.ClassALUMove:
		res := alu.Compute(targetValue, sourceValue, alu.Op(dec.Sub))
		d.Flags = Flags{Zero: res.Zero, Negative: res.Negative, Overflow: res.Overflow}
		if dec.Class == isa.ClassALUMove {
			d.writeback(dec.A, targetRaw, res.Out)
		}
		advance()

	default:
		advance()
	}

	return d.shutdown, nil
}

// selectRaw picks the register/constant wire named by spec's
// selector, ignoring its pointer bit. The bool reports whether the
// instruction word's trailing constant was consumed.
func (d *Decoder) selectRaw(spec isa.Specifier, constant word.Word) (word.Word, bool) {
	switch spec.Selector {
	case isa.SelA:
		return d.Regs.A.Read(), false
	case isa.SelB:
		return d.Regs.B.Read(), false
	case isa.SelC:
		return d.Regs.C.Read(), false
	case isa.SelD:
		return d.Regs.D.Read(), false
	case isa.SelSP:
		return d.Regs.SP.Read(), false
	case isa.SelConst:
		return constant, true
	default:
		return 0, false
	}
}

// writeback routes value to the destination named by spec: memory at
// raw if the pointer bit is set, otherwise the register raw was read
// from. Writing to a non-pointer constant target is ignored; the
// parser accepts one for two-address mnemonics (e.g. `compare 5 a`),
// where it serves only as an input value.
func (d *Decoder) writeback(spec isa.Specifier, raw, value word.Word) {
	if spec.Pointer {
		d.Mem.Write(raw, value, true)
		return
	}
	switch spec.Selector {
	case isa.SelA:
		d.Regs.A.Write(value, true)
	case isa.SelB:
		d.Regs.B.Write(value, true)
	case isa.SelC:
		d.Regs.C.Write(value, true)
	case isa.SelD:
		d.Regs.D.Write(value, true)
	case isa.SelSP:
		d.Regs.SP.Write(value, true)
	}
}
