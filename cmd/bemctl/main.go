package main

import "github.com/atdiar/bem/cmd/bemctl/cmd"

func main() {
	cmd.Execute()
}
