package main

import "github.com/aylesm/federation/cmd"

func main() {
	cmd.Execute()
}
