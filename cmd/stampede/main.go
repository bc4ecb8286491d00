package main

import (
	"github.com/stampede-tools/stampede-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
