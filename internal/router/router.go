package routes

import (
	"net/http"

	_ "github.com/oggyb/textsms-relay/internal/docs" // swagger docs
	"github.com/oggyb/textsms-relay/internal/response"
	swaggerHandler "github.com/swaggo/http-swagger"
)

type AppDeps struct {
	Home  HomeHandler
	Relay RelayHandler
	Ops   OpsHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type RelayHandler interface {
	Send(w http.ResponseWriter, r *http.Request)
	Schedule(w http.ResponseWriter, r *http.Request)
	Bulk(w http.ResponseWriter, r *http.Request)
	DeliveryReport(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
}

type OpsHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	LastBalance(w http.ResponseWriter, r *http.Request)
	Dispatches(w http.ResponseWriter, r *http.Request)
	Refresher(w http.ResponseWriter, r *http.Request)
}

const apiPrefix = "/api/textsms"

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)
	mux.HandleFunc("GET /health", d.Home.Health)

	mux.HandleFunc("POST "+apiPrefix+"/send", d.Relay.Send)
	mux.HandleFunc("POST "+apiPrefix+"/schedule", d.Relay.Schedule)
	mux.HandleFunc("POST "+apiPrefix+"/bulk", d.Relay.Bulk)
	mux.HandleFunc("GET "+apiPrefix+"/dlr/{messageId}", d.Relay.DeliveryReport)
	mux.HandleFunc("GET "+apiPrefix+"/balance", d.Relay.Balance)

	mux.HandleFunc("GET "+apiPrefix+"/balance/last", d.Ops.LastBalance)
	mux.HandleFunc("POST "+apiPrefix+"/balance/refresher", d.Ops.Refresher)
	mux.HandleFunc("GET "+apiPrefix+"/stats", d.Ops.Stats)
	mux.HandleFunc("GET "+apiPrefix+"/dispatches", d.Ops.Dispatches)

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
