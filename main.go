package main

import "github.com/user4815162342/monstorr/cmd"

func main() {
	cmd.Execute()
}
