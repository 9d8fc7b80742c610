package main

import "github.com/fysac/xprng/cmd"

func main() {
	cmd.Execute()
}
