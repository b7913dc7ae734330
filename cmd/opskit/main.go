package main

import (
	"github.com/thand-io/opskit/cmd/cli"
)

func main() {
	cli.Execute()
}
