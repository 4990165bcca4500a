// pctlog - Percentile Log Highlighter
//
// pctlog reads a log, captures a number from each line with a regular
// expression and highlights values by the percentile band they fall into.
package main

import (
	"os"

	"github.com/ccollicutt/pctlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
