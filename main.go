package main

import "github.com/paisaledger/statement-extractor/internal/cli"

func main() {
	cli.Execute()
}
