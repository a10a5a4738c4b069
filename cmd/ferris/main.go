package main

import (
	"embed"
	"fmt"
	"os"

	"github.com/dev-parkins/FerrisScript-sub008/pkg/app"
)

//go:embed examples
var embeddedExamples embed.FS

func main() {
	application := app.New(embeddedExamples)
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
