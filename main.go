package main

import (
	"fmt"
	"os"

	"github.com/Tinclon/transaction-tracker/cmd/report"
	"github.com/Tinclon/transaction-tracker/cmd/root"
	"github.com/Tinclon/transaction-tracker/cmd/rules"
)

func init() {
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
