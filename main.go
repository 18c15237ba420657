package main

import "tripdesk-backend/cmd"

func main() {
	cmd.Run()
}
