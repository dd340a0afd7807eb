package client

import (
	"encoding/json"

	"github.com/dmitrijs2005/vibecart/internal/client/models"
)

// envelope is the API's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// fieldErrors decodes the errors member; shapes other than an array of
// objects are ignored.
func (e *envelope) fieldErrors() []models.FieldError {
	if len(e.Errors) == 0 {
		return nil
	}
	var out []models.FieldError
	if err := json.Unmarshal(e.Errors, &out); err != nil {
		return nil
	}
	return out
}
