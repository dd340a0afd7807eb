package models

import "encoding/json"

// FieldError is one entry of the API's "errors" array (express-validator
// shape). Field is taken from "path", falling back to "param".
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"msg"`
	Value   any    `json:"value,omitempty"`
}

func (e *FieldError) UnmarshalJSON(b []byte) error {
	var w struct {
		Path  string `json:"path"`
		Param string `json:"param"`
		Field string `json:"field"`
		Msg   string `json:"msg"`
		Value any    `json:"value"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	e.Field = w.Path
	if e.Field == "" {
		e.Field = w.Param
	}
	if e.Field == "" {
		e.Field = w.Field
	}
	e.Message = w.Msg
	e.Value = w.Value
	return nil
}
