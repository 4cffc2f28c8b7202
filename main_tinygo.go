//go:build tinygo

package main

import (
	"calcpad/app"
	"calcpad/hal"
)

func main() {
	app.Run(hal.New())
}
