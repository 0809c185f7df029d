package http

import (
	"github.com/nats-io/nats.go"

	"github.com/smokemap/smokemap/internal/adapters/postgres"
	"github.com/smokemap/smokemap/internal/adapters/valkey"
	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Loader      *usecases.LoaderService
	Spots       *usecases.SpotService
	Submissions *usecases.SubmissionService
	Uploads     ports.UploadURLSigner
	NATS        *nats.Conn
	DB          *postgres.DB
	Store       *valkey.Store
}
