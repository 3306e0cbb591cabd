//go:build tinygo && baremetal

package main

import (
	"tinycon/app"
	"tinycon/hal"
)

func main() {
	app.Run(hal.New(), app.DefaultConfig())
}
