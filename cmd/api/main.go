package main

import (
	"flag"
	"fmt"
	"log"

	"cadastro/internal/app"
	"cadastro/internal/services"
)

// @title                       API Clientes
// @version                     1.0
// @description                 Cadastro de clientes com autenticação JWT.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to the YAML config file (defaults to CONFIG_PATH or config/config.yaml)")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of this password for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := services.HashPassword(*hashPassword)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		fmt.Println(hash)
		return
	}

	if err := app.Run(*configPath); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
