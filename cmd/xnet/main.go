package main

import "github.com/OpenTraceLab/xnetlist/cmd/xnet/cmd"

func main() {
	cmd.Execute()
}
