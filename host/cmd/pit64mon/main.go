package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tty "github.com/mattn/go-tty"

	"samhal/host/monitor"
	"samhal/host/serial"
)

var (
	device = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate of the debug UART")
)

func main() {
	flag.Parse()

	fmt.Println("pit64mon - SAMA7G5 timer monitor console")
	fmt.Println()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open port: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	client := monitor.NewClient(port)
	if err := client.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: device not responding: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected successfully!")
	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")

	term, err := tty.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	defer term.Close()

	console := monitor.NewConsole(client, os.Stdout)
	for {
		fmt.Print("> ")
		line, err := term.ReadString()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
				os.Exit(1)
			}
			break
		}
		if err := console.Exec(line); err == io.EOF {
			fmt.Println("Goodbye!")
			return
		}
	}
}
