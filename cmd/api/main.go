package main

import (
	"context"
	"log"

	_ "github.com/dhima/event-records/docs" // Import generated docs
	"github.com/dhima/event-records/internal/api"
	"github.com/dhima/event-records/pkg/config"
)

// @title Event Records API
// @version 1.0
// @description Event records for a scheduling application. Owners create, list and delete their bookable events; anyone can look up an event by the owner's username.
// @description
// @description Authentication is delegated to an external OpenID Connect provider. Send its ID token as a bearer token.

// @contact.name API Support
// @contact.url https://github.com/dhima/event-records
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description ID token from the identity provider, as "Bearer <token>"

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	srv, err := api.NewServer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("start api server: %v", err)
	}
	if err := srv.Serve(); err != nil {
		log.Fatalf("api server stopped: %v", err)
	}
}
