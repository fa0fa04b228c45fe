// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"

	"github.com/aoideee/magazine-catalog/internal/validator"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope is the top-level JSON wrapper type used for all API responses.
// Every response body is a JSON object with at least one named key,
// e.g. {"magazine": {...}} or {"magazines": [...], "metadata": {...}}.
type envelope map[string]any

// readISSNParam extracts the ":issn" URL parameter added by httprouter and
// checks its format.
func (app *applicationDependencies) readISSNParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	issn := params.ByName("issn")
	if !validator.IsValidISSN(issn) {
		return "", errors.New("invalid issn parameter: must have the format DDDD-DDDX")
	}
	return issn, nil
}

// readString reads a string query parameter from qs, returning defaultValue
// if the key is absent or empty.
func (app *applicationDependencies) readString(qs url.Values, key, defaultValue string) string {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	return s
}

// readInt reads an integer query parameter from qs, returning defaultValue if
// the key is absent. Unparsable values are recorded in v.
func (app *applicationDependencies) readInt(qs url.Values, key string, defaultValue int, v *validator.Validator) int {
	s := qs.Get(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// writeJSON marshals data to indented JSON, applies any custom headers,
// sets Content-Type to "application/json", writes the status code, and
// streams the body to the client.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data).
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		return err
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
