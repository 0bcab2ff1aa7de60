package service

import (
	"encoding/json"
	"strings"

	"settlement-reconciler/pkg/apperror"
)

const maxPayloadDetail = 200

// decodePayload decodes a backend payload that is either bare or wrapped in
// a {"success": true, "data": ...} envelope.
func decodePayload(data json.RawMessage, out any) error {
	var envelope struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Success != nil && len(envelope.Data) > 0 {
		data = envelope.Data
	}
	if err := json.Unmarshal(data, out); err != nil {
		detail := string(data)
		if len(detail) > maxPayloadDetail {
			detail = strings.ToValidUTF8(detail[:maxPayloadDetail], "") + "..."
		}
		return apperror.ErrJSONParse(detail, err)
	}
	return nil
}
