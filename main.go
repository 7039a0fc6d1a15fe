package main

import (
	"github.com/h6xserial/seridl/cli/cmd"
)

func main() {
	cmd.Execute()
}
