package main

import "collectio/cmd/collectio-cli/cmd"

func main() {
	cmd.Execute()
}
