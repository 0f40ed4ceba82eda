package main

import "auditlens/cmd/auditlens-cli/cmd"

func main() {
	cmd.Execute()
}
