package main

import (
	"os"

	"currconv/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Currency Conversion API
// @version 1.0
// @description Converts monetary amounts between currencies using a third-party rate provider and keeps a history of completed conversions.
// @BasePath /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application terminated")
		os.Exit(1)
	}
}
