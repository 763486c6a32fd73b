package main

import "github.com/peekknuf/scorekit/cmd"

func main() {
	cmd.Execute()
}
