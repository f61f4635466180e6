package main

import "github.com/notargets/casemodel/cmd"

func main() {
	cmd.Execute()
}
