// Idiomatic entrypoint for Cobra CLI that delegates handling to the Cobra root command in cmd/lbdemo/root.go

package main

import (
	"github.com/rpcmesh/loadbalance/cmd/lbdemo"
)

func main() {
	lbdemo.Execute()
}
