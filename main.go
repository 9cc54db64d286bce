package main

import (
	"os"

	"pocketpilot/budget-engine/cmd/categories"
	"pocketpilot/budget-engine/cmd/months"
	"pocketpilot/budget-engine/cmd/prescribe"
	"pocketpilot/budget-engine/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(prescribe.Cmd)
	root.Cmd.AddCommand(months.Cmd)
	root.Cmd.AddCommand(categories.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
