// Entrypoint for the peelctl CLI; delegates to the Cobra root command in cmd/root.go.

package main

import (
	"github.com/clademodel/peelcore/cmd"
)

func main() {
	cmd.Execute()
}
