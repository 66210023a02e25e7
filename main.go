package main

import "envault/cmd"

func main() {
	cmd.Execute()
}
