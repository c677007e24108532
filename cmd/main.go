package main

import (
	"github.com/Sahil8130/E-Learning/internal/app"
	"github.com/Sahil8130/E-Learning/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
