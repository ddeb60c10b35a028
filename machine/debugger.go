package machine

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"comp16/disasm"
	"comp16/word"
)

type model struct {
	m      *Machine
	prevPC word.Word
	err    error
}

const wordsPerRow = 16

// renderPage renders one 16-word row of RAM as a line, highlighting
// the word at the current program counter.
func (md model) renderPage(start word.Word) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := word.Word(0); i < wordsPerRow; i++ {
		v := md.m.Mem.Read(start + i)
		if start+i == md.m.PC.Read() {
			s += fmt.Sprintf("[%04x] ", uint16(v))
		} else {
			s += fmt.Sprintf(" %04x  ", uint16(v))
		}
	}
	return s
}

func (md model) status() string {
	var flags string
	for _, flag := range []bool{md.m.Dec.Flags.Zero, md.m.Dec.Flags.Negative, md.m.Dec.Flags.Overflow} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
 A: %04x
 B: %04x
 C: %04x
 D: %04x
SP: %04x
 Z N O
`,
		uint16(md.m.PC.Read()), uint16(md.prevPC),
		uint16(md.m.Regs.A.Read()),
		uint16(md.m.Regs.B.Read()),
		uint16(md.m.Regs.C.Read()),
		uint16(md.m.Regs.D.Read()),
		uint16(md.m.Regs.SP.Read()),
	) + flags
}

func (md model) pageTable() string {
	header := "addr | "
	for b := 0; b < wordsPerRow; b++ {
		header += fmt.Sprintf(" %2x  ", b)
	}

	pc := md.m.PC.Read()
	base := (pc / wordsPerRow) * wordsPerRow
	rows := []string{header}
	for i := -2; i <= 2; i++ {
		start := int(base) + i*wordsPerRow
		if start < 0 {
			continue
		}
		rows = append(rows, md.renderPage(word.Word(start)))
	}
	return strings.Join(rows, "\n")
}

// screenPreview renders the lowest 64 screen-region words as ASCII,
// one character per word (low byte), 32 columns wide.
func (md model) screenPreview() string {
	const cols = 32
	snap := md.m.Snapshot()
	var b strings.Builder
	for i := 0; i < 64 && i < len(snap.Screen); i++ {
		c := byte(snap.Screen[i])
		if c < 0x20 || c > 0x7e {
			c = '.'
		}
		b.WriteByte(c)
		if (i+1)%cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (md model) currentInstruction() string {
	pc := md.m.PC.Read()
	return disasm.Decode(md.m.Mem.Read(pc), md.m.Mem.Read(pc+1))
}

func (md model) Init() tea.Cmd { return nil }

func (md model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return md, tea.Quit
		case " ", "j":
			md.prevPC = md.m.PC.Read()
			if _, err := md.m.Tick(); err != nil {
				md.err = err
				return md, tea.Quit
			}
		}
	}
	return md, nil
}

func (md model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, md.pageTable(), md.status()),
		"",
		md.currentInstruction(),
		"",
		md.screenPreview(),
		"",
		spew.Sdump(md.m.Regs),
	)
}

// Debug starts an interactive single-stepping TUI over m. Space or j
// steps one cycle; q quits.
func Debug(m *Machine) error {
	p, err := tea.NewProgram(model{m: m}).Run()
	if err != nil {
		return err
	}
	if x, ok := p.(model); ok && x.err != nil {
		return x.err
	}
	return nil
}
