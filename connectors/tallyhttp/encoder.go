package tallyhttp

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Count is the envelope returned by every counter route.
type Count struct {
	Count int `json:"count"`
}

type Info struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

const contentType = "application/json; charset=utf-8"

func encode(w http.ResponseWriter, r *http.Request, log *zerolog.Logger, resource any) {
	body, err := json.MarshalContext(r.Context(), resource)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		log.Debug().Err(err).Msg("failed to write response")
	}
}
