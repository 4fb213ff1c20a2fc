package main

import (
	"github.com/tomasrivera/gaming-platform/internal/cli"
)

func main() {
	cli.Execute()
}
