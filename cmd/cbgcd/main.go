package main

import (
	"os"

	"github.com/coinbase/cb-gcd-go/cmd/cbgcd/command"
)

func main() {
	if err := command.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
