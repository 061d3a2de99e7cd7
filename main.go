package main

import (
	"github.com/midgard-statistics/backend/cmd/app"
)

// @title          Midgard Statistics API
// @version        1.0.0
// @description    Read-mostly catalog API serving Midgard game items and monsters.
// @license.name   MIT License
// @license.url    https://opensource.org/licenses/MIT
// @BasePath       /api
func main() {
	app.Run()
}
