package main

import (
	"os"

	"p2parb/internal/app"

	"github.com/sirupsen/logrus"
)

// @title P2P Arbitrage API
// @version 1.0
// @description Cross-marketplace and cross-currency USDT P2P opportunity engine.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
