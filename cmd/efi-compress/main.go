package main

import "github.com/onecrypto/cryptobin-packager/cmd/efi-compress/cmd"

func main() {
	cmd.Execute()
}
