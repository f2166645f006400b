package main

import "Sonotext/cmd"

func main() {
	cmd.Execute()
}
