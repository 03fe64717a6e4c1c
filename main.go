package main

import "github.com/chrishoke/access-bridge-explorer/cmd"

func main() {
	cmd.Execute()
}
