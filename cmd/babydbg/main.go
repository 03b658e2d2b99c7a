package main

import (
	"flag"
	"fmt"
	"os"

	"babydbg/internal/di"
	"babydbg/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "enable console logging")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "babydbg: %s\n", err)
		os.Exit(1)
	}
}
