package main

import "tasknotes/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()
	app.MustEnsureSchema()

	app.MustInitCache()
	defer app.CloseCache()

	app.MustListenAndServeHTTP()
}
