package main

import (
	"fmt"

	"eventify/event-api/app"
	"eventify/event-api/config"
	"eventify/event-api/db"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if viper.GetBool("migrate_only") {
		if _, err := db.New(); err != nil {
			panic(err)
		}

		fmt.Println("Migrations applied, role groups seeded")
		return
	}

	router, err := app.NewRouter()
	if err != nil {
		panic(err)
	}

	addr := fmt.Sprintf(":%d", viper.GetInt("host.port"))
	zap.L().Info("Server starting", zap.String("addr", addr))

	if viper.GetBool("host.ssl.enabled") {
		err = router.RunTLS(addr,
			viper.GetString("host.ssl.certificate_path"),
			viper.GetString("host.ssl.certificate_key_path"),
		)
	} else {
		err = router.Run(addr)
	}
	if err != nil {
		panic(err)
	}
}
