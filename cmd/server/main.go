package main

import (
	"github.com/nguyentranbao-ct/shop-bot/cmd"
)

func main() {
	cmd.Execute()
}
