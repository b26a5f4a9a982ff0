// Package main provides a short usage banner. The real entry point is
// cmd/z8000run; this stub exists so `go run .` at the module root
// still tells the user where to look.
package main

import "fmt"

func main() {
	fmt.Println("Z8000/Z8001/Z8002 instruction-set emulator")
	fmt.Println()
	fmt.Println("Run 'go run ./cmd/z8000run [options] <binary-file>' to execute a program.")
}
