package monitor

import (
	"io"
	"strings"
	"testing"

	"samhal/core"
)

func newTestConsole() (*Console, regFile, *strings.Builder) {
	regs := regFile{}
	mon := core.NewMonitor()
	mon.AddWindow(1, regs)
	mon.SetCounterSource(func() uint64 { return 1000 })
	var out strings.Builder
	return NewConsole(NewClient(newLoopback(mon)), &out), regs, &out
}

func TestConsolePokePeek(t *testing.T) {
	con, regs, out := newTestConsole()

	if err := con.Exec("poke 1 0x20 0xabcd"); err != nil {
		t.Fatalf("poke returned %v", err)
	}
	if regs[0x20] != 0xabcd {
		t.Errorf("register = %#x, want 0xabcd", regs[0x20])
	}

	out.Reset()
	if err := con.Exec("peek 1 0x20"); err != nil {
		t.Fatalf("peek returned %v", err)
	}
	if !strings.Contains(out.String(), "0x0000abcd") {
		t.Errorf("peek output %q missing value", out.String())
	}
}

func TestConsoleCounter(t *testing.T) {
	con, _, out := newTestConsole()
	if err := con.Exec("counter"); err != nil {
		t.Fatalf("counter returned %v", err)
	}
	if !strings.Contains(out.String(), "1000") {
		t.Errorf("counter output %q missing value", out.String())
	}
}

func TestConsoleQuit(t *testing.T) {
	con, _, _ := newTestConsole()
	for _, cmd := range []string{"quit", "exit", "q"} {
		if err := con.Exec(cmd); err != io.EOF {
			t.Errorf("%s returned %v, want io.EOF", cmd, err)
		}
	}
}

func TestConsoleBadInput(t *testing.T) {
	con, _, out := newTestConsole()

	// None of these end the session.
	for _, cmd := range []string{
		"",
		"bogus",
		"peek",
		"peek 1",
		"peek nine 0",
		"poke 1 0x20",
		"poke 1 0x20 nonsense",
		"peek 300 0", // window out of uint8 range
		`peek "unterminated`,
	} {
		out.Reset()
		if err := con.Exec(cmd); err != nil {
			t.Errorf("Exec(%q) returned %v", cmd, err)
		}
	}

	out.Reset()
	if err := con.Exec("peek 9 0"); err != nil {
		t.Fatalf("peek on unknown window returned %v", err)
	}
	if !strings.Contains(out.String(), "unknown register window") {
		t.Errorf("output %q missing remote error", out.String())
	}
}

func TestConsoleHelp(t *testing.T) {
	con, _, out := newTestConsole()
	if err := con.Exec("help"); err != nil {
		t.Fatalf("help returned %v", err)
	}
	for _, cmd := range []string{"ping", "peek", "poke", "counter"} {
		if !strings.Contains(out.String(), cmd) {
			t.Errorf("help output missing %q", cmd)
		}
	}
}
