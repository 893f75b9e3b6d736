package main

import "github.com/onecrypto/cryptobin-packager/cmd/platform-build/cmd"

func main() {
	cmd.Execute()
}
