package dto

import "encoding/json"

// RegisterResponse wraps the remote payload untouched. A missing payload encodes as null.
type RegisterResponse struct {
	Data json.RawMessage `json:"data"`
}
