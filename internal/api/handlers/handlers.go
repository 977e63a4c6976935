// Package handlers implements the HTTP surface consumed by the dashboard
// client: report generation, reset, upload proxying and the read API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/finsight-app/finsight/internal/api/middleware"
	"github.com/finsight-app/finsight/internal/domain"
)

// writeFailure maps service errors onto the wire contract. An empty dataset
// is the caller's problem (400, "upload data first"); everything else —
// configuration faults, upstream failures, store failures — is a 500. The
// error message is passed through so upstream diagnostic bodies reach the
// caller.
func writeFailure(w http.ResponseWriter, log zerolog.Logger, msg string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrEmptyDataset) {
		status = http.StatusBadRequest
	}

	log.Error().Err(err).Msg(msg)
	middleware.WriteError(w, status, err.Error())
}
