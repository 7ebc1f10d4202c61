// Command climatedash serves the climate records dashboard and imports
// records from CSV files.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
