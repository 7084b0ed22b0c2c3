package main

import "iidxbot/cmd/iidxbot/cmd"

func main() {
	cmd.Execute()
}
