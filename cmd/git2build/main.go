package main

import "github.com/Nemo157/libgit2-build/cmd/git2build/internal"

func main() {
	internal.Execute()
}
