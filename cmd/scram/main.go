// Copyright (c) 2024 The SCRAM authors
//
// MIT License

package main

import "os"

func main() {
	os.Exit(Execute())
}
