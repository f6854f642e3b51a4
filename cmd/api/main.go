package main

import (
	"fmt"
	"os"

	"cattle-records/internal/cli"
)

// @title Cattle Records API
// @version 1.0
// @description Registro de rodeo: animales, sanidad, vacunas, reproducción y reportes.
// @BasePath /
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
