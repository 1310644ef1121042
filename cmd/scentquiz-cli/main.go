package main

import "scentquiz/cmd/scentquiz-cli/cmd"

func main() {
	cmd.Execute()
}
