package main

import "tsv2sql/cmd"

func main() {
	cmd.Execute()
}
