// Package main is the entry point for the odoscan CLI.
package main

import "odoscan.dev/pkg/odoscan/cmd"

func main() {
	cmd.Execute()
}
