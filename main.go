package main

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/sealbox/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
