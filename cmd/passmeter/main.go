package main

import (
	"github.com/AAliKKhan/PassMeterX/pkg/cli"
)

func main() {
	cli.Execute()
}
