package main

import "github.com/crewtide/crewplan/cmd"

func main() {
	cmd.Execute()
}
