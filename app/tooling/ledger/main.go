package main

import "github.com/blocklog/blocklog/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
