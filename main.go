package main

import "github.com/Bridgeless-Project/treasury-svc/cmd"

func main() {
	cmd.Execute()
}
