package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("recoveryctl: %s", err)
		os.Exit(1)
	}
}
