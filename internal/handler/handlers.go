package handler

import (
	myGRPC "github.com/daybook-sync/daybook/internal/handler/grpc"
	myHTTP "github.com/daybook-sync/daybook/internal/handler/http"
	"github.com/daybook-sync/daybook/internal/logger"
	"github.com/daybook-sync/daybook/internal/service"
)

// Handlers aggregates the transport-level handlers of the server.
type Handlers struct {
	HTTP *myHTTP.Handler
	GRPC *myGRPC.Handler
}

func NewHandlers(services *service.Services, logger *logger.Logger) *Handlers {
	return &Handlers{
		HTTP: myHTTP.NewHandler(services, logger),
		GRPC: myGRPC.NewHandler(logger),
	}
}
