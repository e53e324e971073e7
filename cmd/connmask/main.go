// Package main provides the connmask CLI, which logs connector
// configuration with credentials masked.
package main

func main() {
	Execute()
}
