// Command elapse computes elapsed time between timestamps, shifts
// timestamps by durations, and adds durations.
package main

import (
	"os"

	"github.com/roach88/elapse/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
