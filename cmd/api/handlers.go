// cmd/api/handlers.go
// HTTP request handlers for the magazines resource. Each handler is a method
// on *applicationDependencies so it can reach the logger and the library.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/magazine-catalog/internal/data"
	"github.com/aoideee/magazine-catalog/internal/library"
	"github.com/aoideee/magazine-catalog/internal/validator"
)

// healthcheckHandler handles GET /v1/healthcheck.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	env := envelope{
		"status": "available",
		"system_info": map[string]any{
			"environment": app.config.environment,
			"version":     appVersion,
			"records":     app.library.Catalog().Len(),
		},
	}

	err := app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// addMagazineHandler handles POST /v1/magazines.
// A new ISSN creates an entry and answers 201; a known ISSN only has its
// stock raised by the submitted amount and answers 200.
func (app *applicationDependencies) addMagazineHandler(w http.ResponseWriter, r *http.Request) {
	var input data.MagazineInput

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	outcome, err := app.library.AddOrRestock(input)
	if err != nil {
		var verr *library.ValidationError
		if errors.As(err, &verr) {
			app.failedValidationResponse(w, r, verr.Errors)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	magazine, _ := app.library.SearchByISSN(input.ISSN)

	status := http.StatusCreated
	if outcome == library.Restocked {
		status = http.StatusOK
	}

	err = app.writeJSON(w, status, envelope{"magazine": magazine, "outcome": outcome.String()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listMagazinesHandler handles GET /v1/magazines.
// With ?title= it returns every magazine whose title matches exactly.
// Otherwise it lists the catalog with ?page=, ?page_size= and ?sort=.
func (app *applicationDependencies) listMagazinesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	if qs.Has("title") {
		title := qs.Get("title")
		if !validator.IsValidText(title) {
			app.failedValidationResponse(w, r, map[string]string{"title": "must contain only printable ASCII characters"})
			return
		}

		err := app.writeJSON(w, http.StatusOK, envelope{"magazines": app.library.SearchByTitle(title)}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	v := validator.New()
	filters := data.Filters{
		Page:         app.readInt(qs, "page", 1, v),
		PageSize:     app.readInt(qs, "page_size", 20, v),
		Sort:         app.readString(qs, "sort", ""),
		SortSafeList: []string{"", "title", "issn", "stock", "price", "-title", "-issn", "-stock", "-price"},
	}
	v.Check(filters.Page > 0 && filters.Page <= 10_000_000, "page", "must be between 1 and 10 million")
	v.Check(filters.PageSize > 0 && filters.PageSize <= 100, "page_size", "must be between 1 and 100")
	v.Check(validator.In(filters.Sort, filters.SortSafeList...), "sort", "invalid sort value")
	if !v.Valid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	magazines, metadata := app.library.List(filters)

	err := app.writeJSON(w, http.StatusOK, envelope{"magazines": magazines, "metadata": metadata}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showMagazineHandler handles GET /v1/magazines/:issn.
func (app *applicationDependencies) showMagazineHandler(w http.ResponseWriter, r *http.Request) {
	issn, err := app.readISSNParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	magazine, found := app.library.SearchByISSN(issn)
	if !found {
		app.magazineNotFoundResponse(w, r, issn)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"magazine": magazine}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// borrowMagazineHandler handles POST /v1/magazines/:issn/borrow.
func (app *applicationDependencies) borrowMagazineHandler(w http.ResponseWriter, r *http.Request) {
	issn, err := app.readISSNParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	switch app.library.Borrow(issn) {
	case library.BorrowNotFound:
		app.magazineNotFoundResponse(w, r, issn)
		return
	case library.NoCopiesAvailable:
		app.stateConflictResponse(w, r, "no copies available to borrow")
		return
	}

	app.copyChangedResponse(w, r, issn, "magazine borrowed")
}

// returnMagazineHandler handles POST /v1/magazines/:issn/return.
func (app *applicationDependencies) returnMagazineHandler(w http.ResponseWriter, r *http.Request) {
	issn, err := app.readISSNParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	switch app.library.ReturnCopy(issn) {
	case library.ReturnNotFound:
		app.magazineNotFoundResponse(w, r, issn)
		return
	case library.NoneBorrowed:
		app.stateConflictResponse(w, r, "no borrowed copies to return")
		return
	}

	app.copyChangedResponse(w, r, issn, "magazine returned")
}

// copyChangedResponse answers a successful borrow or return with the
// updated entry.
func (app *applicationDependencies) copyChangedResponse(w http.ResponseWriter, r *http.Request, issn, message string) {
	magazine, _ := app.library.SearchByISSN(issn)

	err := app.writeJSON(w, http.StatusOK, envelope{"message": message, "magazine": magazine}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
