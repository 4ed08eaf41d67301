package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/winring/winring/internal/app"
	"github.com/winring/winring/internal/config"
	"github.com/winring/winring/internal/ring"
	"github.com/winring/winring/internal/source"
	"github.com/winring/winring/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		runDaemon()
		return
	}

	switch os.Args[1] {
	case "daemon":
		runDaemon()
	case "windows":
		os.Exit(runWindows())
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage(os.Stderr)
		os.Exit(2)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winring [command]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Run the floating button (default, foreground)")
	fmt.Fprintln(w, "  windows             List the windows the ring would show")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  help                Show this help")
}

func runDaemon() {
	log.SetPrefix("winring: ")
	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}
}

// runWindows prints the filtered, grouped window snapshot: what the ring
// would show if opened right now.
func runWindows() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	conn, err := x11.NewConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to X11: %v\n", err)
		return 1
	}
	defer conn.Close()

	src := source.New(conn, source.Denylist{
		Classes: cfg.Denylist.Classes,
		Titles:  cfg.Denylist.Titles,
	})

	windows := src.ListWindows()
	if len(windows) == 0 {
		fmt.Println("No windows.")
		return 0
	}

	groups := ring.GroupWindows(windows)
	for _, name := range groups.SortedKeys() {
		fmt.Printf("%s\n", name)
		for _, w := range groups[name] {
			fmt.Printf("  %s  %s\n", w.ID, w.Title)
		}
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: winring config <validate|print>")
		return 2
	}

	cfg, err := config.Load()

	switch args[0] {
	case "validate":
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
			return 1
		}
		fmt.Println("Config OK")
		return 0

	case "print":
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			return 1
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode config: %v\n", err)
			return 1
		}
		os.Stdout.Write(out)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
