// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseData is a snapshot of a finished response, handed to the
// request-logging middleware after the sync handler has returned. It
// carries no reference to the live [responseWriter].
type responseData struct {
	// status is the HTTP status code written to the response.
	status int

	// size is the total number of body bytes written.
	size int

	// body holds only the slice passed to the most recent Write call,
	// not a concatenation of all writes.
	body []byte
}

// responseWriter decorates [http.ResponseWriter] to record the status
// code and body size as they are written, so withLogging can report them
// without buffering whole pull pages.
//
// WriteHeader reaches the underlying writer at most once; later calls
// are dropped, per the [http.ResponseWriter] contract.
type responseWriter struct {
	http.ResponseWriter

	// status is recorded on the first WriteHeader call and stays zero
	// until then.
	status int

	// wroteHeader guards the underlying writer against a second
	// WriteHeader.
	wroteHeader bool

	// size accumulates body bytes across all Write calls.
	size int

	// body is replaced on every Write; it holds the last payload only.
	body []byte
}

// WriteHeader records the status code and forwards it exactly once.
// Further calls are no-ops.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the underlying writer, implicitly writing a 200
// header first when none was set, and accumulates the byte count.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	w.body = b
	return n, err
}
