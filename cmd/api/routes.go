// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the router wrapped in
// middleware.
//
// Middleware chain (outermost → innermost):
//
//	assignRequestID → recoverPanic → rateLimit → router
//
// Endpoints:
//
//	GET    /v1/healthcheck               – liveness and catalog size
//	POST   /v1/magazines                 – add a magazine or restock an existing issn
//	GET    /v1/magazines                 – search by exact ?title=, or list all (paginated)
//	GET    /v1/magazines/:issn           – look up one magazine
//	POST   /v1/magazines/:issn/borrow    – lend out one copy
//	POST   /v1/magazines/:issn/return    – take back one copy
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/v1/magazines", app.addMagazineHandler)
	router.HandlerFunc(http.MethodGet, "/v1/magazines", app.listMagazinesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/magazines/:issn", app.showMagazineHandler)
	router.HandlerFunc(http.MethodPost, "/v1/magazines/:issn/borrow", app.borrowMagazineHandler)
	router.HandlerFunc(http.MethodPost, "/v1/magazines/:issn/return", app.returnMagazineHandler)

	return app.assignRequestID(app.recoverPanic(app.rateLimit(router)))
}
