package main

import "github.com/user/qrisk-adk/cmd"

func main() {
	cmd.Execute()
}
