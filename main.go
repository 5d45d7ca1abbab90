package main

import (
	"fmt"
	"os"

	"k8s.io/klog/v2"

	"tasnim.dev/elb-inventory/cmd"
)

func main() {
	rootCmd := cmd.NewInventoryCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cmd.ErrorMessage(err))
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
