package main

import (
	"fmt"
	"os"

	"github.com/erraggy/smdconv"
	"github.com/erraggy/smdconv/cmd/smdconv/commands"
)

// commandNames lists the top-level commands offered as typo suggestions.
var commandNames = []string{"convert", "transform", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("smdconv v%s\n", smdconv.Version())
		fmt.Print(smdconv.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "convert":
		err = commands.HandleConvert(os.Args[2:])
	case "transform":
		err = commands.HandleTransform(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: %s?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the closest command name within edit distance 2,
// or "" if none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance returns the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `smdconv - log odds ratio to standardised mean difference converter

Usage:
  smdconv <command> [flags] <dataset>

Commands:
  convert    Convert log odds ratios to SMDs and pool them
  transform  Convert log odds ratios to SMDs per study without pooling
  mcp        Serve the conversion tools over the Model Context Protocol (stdio)
  version    Show version information
  help       Show this help message

Examples:
  smdconv convert studies.yaml
  smdconv convert -m CS --format json -o pooled.json prior.yaml
  smdconv transform --format yaml studies.json

Run 'smdconv <command> --help' for more information on a command.
`)
}
