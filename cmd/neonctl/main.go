package main

import (
	"github.com/zthreefires/neonctl/cmd/neonctl/cmd"
)

func main() {
	cmd.Execute()
}
