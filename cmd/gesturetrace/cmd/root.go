// Package cmd implements the gesturetrace CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (replay, config).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/driftgesture/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "gesturetrace",
	Short: "gesturetrace - replay touch scripts through a gesture coordinator",
	Long: `gesturetrace feeds a scripted touch sequence through the same gesture
coordinator an app uses and prints every gesture it recognizes.

Use "gesturetrace <command> --help" for more information about a command.`,
	Usage: "gesturetrace <command> [flags]",
}

// Global options shared by every command.
var globals struct {
	dir     string
	verbose bool
	color   colorMode
}

// stdout is where commands write their results.
var stdout io.Writer = os.Stdout

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	globals.dir = ""
	globals.verbose = false
	globals.color = colorAuto

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "gesturetrace version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--verbose":
			globals.verbose = true
		case "--no-color":
			globals.color = colorNever
		case "--color":
			globals.color = colorAlways
		case "--dir":
			if i+1 < len(args) {
				globals.dir = args[i+1]
				i++
			} else {
				return fmt.Errorf("--dir requires a directory path")
			}
		default:
			if strings.HasPrefix(arg, "--dir=") {
				globals.dir = strings.TrimPrefix(arg, "--dir=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	if globals.verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer logging.SetLogger(nil)
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func printHelp(cmd *Command) {
	w := stdout
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  --version            Show version information")
	fmt.Fprintln(w, "  -v, --verbose        Log detector lifecycle to stderr")
	fmt.Fprintln(w, "  --dir DIR            Project directory holding gestures.yaml (default: module root)")
	fmt.Fprintln(w, "  --color, --no-color  Force or disable colored output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  gesturetrace replay pinch.yaml      Replay a script")
	fmt.Fprintln(w, "  gesturetrace replay --json tap.yaml Print the trace as JSON")
	fmt.Fprintln(w, "  gesturetrace config                 Show resolved gesture settings")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
