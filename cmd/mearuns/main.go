// cmd/mearuns/main.go
package main

import (
	"os"

	"mea/internal/runsapp"
)

func main() {
	os.Exit(runsapp.Run(os.Args[1:], os.Stdout, os.Stderr))
}
