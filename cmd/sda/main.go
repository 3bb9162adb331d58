package main

import (
	"os"

	"github.com/prenaissance/steam-desktop-authenticator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
