package main

import "github.com/tablesweep/cli/cmd"

func main() {
	cmd.Execute()
}
