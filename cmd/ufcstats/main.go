package main

import "github.com/thebenkogan/ufcstats/cmd/ufcstats/cmd"

func main() {
	cmd.Execute()
}
