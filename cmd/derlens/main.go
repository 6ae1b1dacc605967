// derlens is an interactive viewer for DER-encoded ASN.1.
//
// Usage:
//
//	derlens [file]                 # open the viewer, optionally preloaded
//	openssl x509 -outform der | derlens
//	derlens dump cert.pem          # print the tree and exit
//	derlens stats --format json key.der
package main

import (
	"os"

	"github.com/Mr-Dark-debug/derlens/internal/cli"
	"github.com/Mr-Dark-debug/derlens/internal/logging"
)

// Set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}
