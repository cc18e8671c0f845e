package apiutil

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// códigos de erro expostos no campo "error" das respostas
const (
	ErrorCodeInvalidShape            = "invalidShape"
	ErrorCodeInsufficientPlayers     = "insufficientPlayers"
	ErrorCodeNoWeightedSkills        = "noWeightedSkills"
	ErrorCodeUnsatisfiableSexBalance = "unsatisfiableSexBalance"
	ErrorCodeUnknownEntity           = "unknownEntity"
	ErrorCodePersistenceFailed       = "persistenceFailed"
	ErrorCodeInvalidPayload          = "invalidPayload"
	ErrorCodeInternal                = "internal"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func DecodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// a esta altura o status já foi enviado, só dá pra registrar
		log.Error().Err(err).Msg("falha ao serializar a resposta")
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string, details any) {
	WriteJSON(w, status, &ErrorResponse{
		Error:   code,
		Message: message,
		Details: details,
	})
}
