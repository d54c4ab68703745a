package main

import (
	"log"

	"github.com/km-arc/go-mvc/framework/app"

	_ "github.com/km-arc/go-mvc/demo/controller"
	_ "github.com/km-arc/go-mvc/demo/service"
)

func main() {
	application := app.New() // loads .env automatically

	if err := application.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
