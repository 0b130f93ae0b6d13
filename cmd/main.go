package main

import "github.com/mkarpenko/go-tasklist/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()

	app.MustPrepareStorage()
	app.MustListenAndServeHTTP()
}
