// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for reading HTTP request bodies.

Decoding failures are turned into [apperr.AppError] values so handlers can
pass them straight to their error writer.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taibuivan/bookshelf/internal/platform/apperr"
	"github.com/taibuivan/bookshelf/internal/platform/validate"
)

// ErrBodyTooLarge is returned when the body exceeds the handler's limit.
var ErrBodyTooLarge = apperr.ValidationError("Request body too large")

/*
DecodeJSON reads at most maxBytes of the request body and decodes it into target.

Returns:
  - error: ErrBodyTooLarge or validate.ErrInvalidJSON, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}, maxBytes int64) error {
	body := http.MaxBytesReader(writer, request.Body, maxBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return BodyError(err)
	}
	return nil
}

// BodyError classifies an error raised while reading a limited body.
func BodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return ErrBodyTooLarge
	}
	return validate.ErrInvalidJSON
}
