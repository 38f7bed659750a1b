// @title           mentormatch API
// @version         1.0
// @description     API платформы менторства: профили, подбор, матчи, переписка.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "mentormatch_backend/internal/app"

func main() {
	app.Run()
}
