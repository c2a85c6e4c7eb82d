package main

import "github.com/aarlazuardi/erp-ledger/internal/commands"

func main() {
	commands.Execute()
}
