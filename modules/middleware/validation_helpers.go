// Copyright 2025 Nguyen Nhat Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package middleware

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
)

// FieldError pairs a request field with the reason it failed validation.
type FieldError struct {
	Field  string
	Reason string
}

// ExtractValidationErrors flattens an OpenAPI validation error into
// field-level errors usable in an RFC 7807 invalid-params list.
func ExtractValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var out []FieldError

	if multi, ok := err.(openapi3.MultiError); ok {
		for _, e := range multi {
			out = append(out, extractSingleError(e)...)
		}
		return out
	}

	return extractSingleError(err)
}

func extractSingleError(err error) []FieldError {
	switch e := err.(type) {
	case *openapi3filter.RequestError:
		if e.Parameter != nil {
			return []FieldError{{Field: e.Parameter.Name, Reason: SafeReason(e)}}
		}
		if schemaErr, ok := e.Err.(*openapi3.SchemaError); ok {
			return []FieldError{fieldErrorFromSchema(schemaErr)}
		}
		if multi, ok := e.Err.(openapi3.MultiError); ok {
			var out []FieldError
			for _, inner := range multi {
				if schemaErr, ok := inner.(*openapi3.SchemaError); ok {
					out = append(out, fieldErrorFromSchema(schemaErr))
				} else {
					out = append(out, FieldError{Field: "body", Reason: SafeReason(inner)})
				}
			}
			return out
		}
		return []FieldError{{Field: "body", Reason: SafeReason(e)}}
	case *openapi3.SchemaError:
		return []FieldError{fieldErrorFromSchema(e)}
	default:
		return []FieldError{{Field: "request", Reason: SafeReason(err)}}
	}
}

func fieldErrorFromSchema(err *openapi3.SchemaError) FieldError {
	field := extractFieldFromPointer(err.JSONPointer())
	if field == "" {
		field = "body"
	}
	return FieldError{Field: field, Reason: err.Reason}
}

func extractFieldFromPointer(pointer []string) string {
	if len(pointer) == 0 {
		return ""
	}
	return strings.Join(pointer, ".")
}

// SafeReason returns a single-line error message suitable for clients.
// Multi-line schema dumps are truncated to their first line.
func SafeReason(err error) string {
	msg := err.Error()
	if idx := strings.IndexByte(msg, '\n'); idx >= 0 {
		msg = msg[:idx]
	}
	return strings.TrimSpace(msg)
}
