package main

import "github.com/KaramelBytes/statkit-cli/cmd"

func main() {
	cmd.Execute()
}
