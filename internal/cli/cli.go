package cli

import (
	"fmt"
	"strings"

	"torreport/internal/commands"
	"torreport/internal/output"
	"torreport/internal/version"
)

// Run parses the argv surface and dispatches. Report runs always return
// exit code 0: the program is meant to run under cron, and a degraded
// report is still a successful job. Only argument misuse is nonzero.
func Run(args []string) int {
	stdoutOnly := false

	for _, arg := range args[1:] {
		switch arg {
		case "--stdout":
			stdoutOnly = true
		case "-h", "--help", "help":
			output.Println(usage())
			return 0
		case "-v", "--version", "version":
			output.Printf("torreport %s (build %s)\n", version.Version, version.Build)
			return 0
		default:
			output.Printf("unknown argument: %s\n\n", arg)
			output.Println(usage())
			return 2
		}
	}

	return commands.RunReport(stdoutOnly)
}

func usage() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "torreport - Tor relay health report")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Usage:")
	fmt.Fprintln(b, "  torreport             generate the report and send it via email")
	fmt.Fprintln(b, "  torreport --stdout    print the report to stdout instead of emailing")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Flags:")
	fmt.Fprintln(b, "  -h, --help       show this help")
	fmt.Fprintln(b, "  -v, --version    show version")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Configuration is read from the JSON file at $TORREPORT_CONFIG")
	fmt.Fprintln(b, "(default ~/.torreport/torreport.json) with TORREPORT_* environment")
	fmt.Fprintln(b, "overrides. Typical use is a daily cron entry:")
	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "  0 8 * * * /usr/local/bin/torreport")
	return b.String()
}
