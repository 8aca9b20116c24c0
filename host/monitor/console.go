package monitor

import (
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"
)

// Console interprets monitor commands typed on the host and runs them
// against a client. One line in, zero or more lines of output.
type Console struct {
	client *Client
	out    io.Writer
}

// NewConsole returns a console executing commands through client and writing
// results to out.
func NewConsole(client *Client, out io.Writer) *Console {
	return &Console{client: client, out: out}
}

// Exec parses and runs one command line. It returns io.EOF for the quit
// command; command failures are printed, not returned, so a typo does not
// end the session.
func (c *Console) Exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintf(c.out, "parse error: %v\n", err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}

	switch args[0] {
	case "quit", "exit", "q":
		return io.EOF

	case "help", "?":
		c.printHelp()

	case "ping":
		if err := c.client.Ping(); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return nil
		}
		fmt.Fprintln(c.out, "pong")

	case "peek":
		win, offset, ok := c.parseWinOffset(args[1:], 2, "peek <window> <offset>")
		if !ok {
			return nil
		}
		v, err := c.client.Peek32(win, offset)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return nil
		}
		fmt.Fprintf(c.out, "[%d] 0x%08x = 0x%08x\n", win, offset, v)

	case "poke":
		win, offset, ok := c.parseWinOffset(args[1:], 3, "poke <window> <offset> <value>")
		if !ok {
			return nil
		}
		value, err := parseUint32(args[3])
		if err != nil {
			fmt.Fprintf(c.out, "bad value %q: %v\n", args[3], err)
			return nil
		}
		if err := c.client.Poke32(win, offset, value); err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return nil
		}
		fmt.Fprintf(c.out, "[%d] 0x%08x <- 0x%08x\n", win, offset, value)

	case "counter":
		v, err := c.client.Counter()
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			return nil
		}
		fmt.Fprintf(c.out, "counter = %d (%#x)\n", v, v)

	default:
		fmt.Fprintf(c.out, "unknown command: %s (type 'help' for available commands)\n", args[0])
	}
	return nil
}

func (c *Console) parseWinOffset(args []string, want int, usage string) (uint8, uint32, bool) {
	if len(args) < want {
		fmt.Fprintf(c.out, "usage: %s\n", usage)
		return 0, 0, false
	}
	win, err := strconv.ParseUint(args[0], 0, 8)
	if err != nil {
		fmt.Fprintf(c.out, "bad window %q: %v\n", args[0], err)
		return 0, 0, false
	}
	offset, err := parseUint32(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "bad offset %q: %v\n", args[1], err)
		return 0, 0, false
	}
	return uint8(win), offset, true
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	return uint32(v), err
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "\nAvailable commands:")
	fmt.Fprintln(c.out, "  help                         - Show this help message")
	fmt.Fprintln(c.out, "  ping                         - Check the link")
	fmt.Fprintln(c.out, "  peek <window> <offset>       - Read a 32-bit register")
	fmt.Fprintln(c.out, "  poke <window> <offset> <val> - Write a 32-bit register")
	fmt.Fprintln(c.out, "  counter                      - Read the 64-bit counter")
	fmt.Fprintln(c.out, "  quit/exit/q                  - Exit the program")
	fmt.Fprintln(c.out)
}
