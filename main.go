// Public domain.

package main

import "github.com/jdep/jdep/internal/damprog"

func main() {
	damprog.Main()
}
