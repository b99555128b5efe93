// Command token mints a bearer token for a principal with the shared
// secret from the configuration, for calling the API locally.
package main

import (
	"flag"
	"fmt"
	"log"

	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/service"
)

func main() {
	principalFlag := flag.String("principal", "", "principal to put into the token subject")
	flag.Parse()

	cfg := config.LoadConfig()
	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	principal, err := identity.Parse(*principalFlag)
	if err != nil {
		log.Fatalf("Ошибка: %v", err)
	}

	token, err := service.NewAuthService(cfg).IssueToken(principal)
	if err != nil {
		log.Fatalf("Ошибка выпуска токена: %v", err)
	}

	fmt.Println(token)
}
