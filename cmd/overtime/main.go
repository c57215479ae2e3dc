package main

import (
	"fmt"
	"os"

	"github.com/yuji-8024/t-kento/internal/cli"
)

// version 由 -ldflags "-X main.version=..." 注入
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
