// Command wyclef is a terminal viewer for CLEF (Compact Log Event Format)
// log files.
package main

import (
	"os"

	"github.com/wyclef-go/wyclef/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
