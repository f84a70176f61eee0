package main

import "undertone/cmd"

func main() {
	cmd.Execute()
}
