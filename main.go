package main

import "github.com/pixmob/wavebox/cmd"

func main() {
	cmd.Execute()
}
