// cmd/api/errors.go
// Error-response helpers. Every error body carries the request ID so a
// client report can be matched against the server log.
package main

import (
	"log/slog"
	"net/http"
)

// logError logs an internal error with the request ID, method and URL.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_id", requestIDFrom(r.Context())),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
	)
}

// errorResponse sends a JSON error envelope with the given status code and message.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	data := envelope{"error": message}
	if id := requestIDFrom(r.Context()); id != "" {
		data["request_id"] = id
	}

	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs err and sends a generic 500; details stay in the log.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// magazineNotFoundResponse sends a 404 naming the ISSN that had no entry.
func (app *applicationDependencies) magazineNotFoundResponse(w http.ResponseWriter, r *http.Request, issn string) {
	app.errorResponse(w, r, http.StatusNotFound, "no magazine with issn "+issn)
}

func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 422 with the field-level messages.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

// stateConflictResponse sends a 409 when the copy counts forbid the request.
func (app *applicationDependencies) stateConflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.errorResponse(w, r, http.StatusConflict, message)
}

func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
