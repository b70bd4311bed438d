package main

import (
	"os"

	"github.com/pavelkvkv/mp3DurationDetector/cmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
