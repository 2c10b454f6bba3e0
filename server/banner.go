package server

import (
	"fmt"
	"os"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"
)

const banner = `
   ____   ___  _     _   _ _____ _____ ____
  / ___| / _ \| |   | | | |_   _|_   _|  _ \
 | |  _ | | | | |   | |_| | | |   | | | |_) |
 | |_| || |_| | |___|  _  | | |   | | |  __/
  \____| \__\_\_____|_| |_| |_|   |_| |_|
`

func printBanner(log *logrus.Logger, name, address, graphEndpoint string) {
	// Skip the colored art when stderr is redirected.
	stat, err := os.Stderr.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		color.Yellow.Print(banner)
	}

	log.Infof("%s: listening on %s", name, address)
	log.Infof("%s: graph endpoint mounted on %s", name, graphEndpoint)
}

// PrintAndDie is exported for access in other packages.
func PrintAndDie(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
