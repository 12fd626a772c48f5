//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of starfield requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/field` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a terminal rendering, try `go run ./cmd/tty`.")
	os.Exit(2)
}
