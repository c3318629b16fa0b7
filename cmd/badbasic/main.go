// Command badbasic runs Bad Basic programs and the interactive shell.
package main

import (
	"os"

	"github.com/thomasrohde/badbasic/cmd/badbasic/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
