package main

import "globetrotter-backend/cmd"

func main() {
	cmd.Run()
}
