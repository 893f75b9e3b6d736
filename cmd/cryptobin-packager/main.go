package main

import "github.com/onecrypto/cryptobin-packager/cmd/cryptobin-packager/cmd"

func main() {
	cmd.Execute()
}
