//go:build !glfw

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The OpenGL build of lifegl requires the glfw build tag and cgo.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags glfw ./cmd/life-gl` or build with `-tags glfw`.")
	os.Exit(2)
}
