package backend

import (
	"fmt"
	"strings"

	"github.com/Veraticus/paydesk/internal/common"
	"github.com/Veraticus/paydesk/internal/model"
	"github.com/tidwall/gjson"
)

// StatusOK is the success status, compared case-insensitively.
const StatusOK = "ok"

// Envelope is the common response shape of every endpoint.
type Envelope struct {
	Status  string
	Message string
	Records []model.RawRecord
}

// OK reports whether the backend accepted the request.
func (e Envelope) OK() bool {
	return strings.EqualFold(strings.TrimSpace(e.Status), StatusOK)
}

// Cipher is the application-level encryption used by some endpoints.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertext string) ([]byte, error)
}

// Plain is the identity cipher, for backends that accept cleartext on their
// encrypted routes and for tests.
type Plain struct{}

// Encrypt returns the plaintext unchanged.
func (Plain) Encrypt(plaintext []byte) (string, error) {
	return string(plaintext), nil
}

// Decrypt returns the ciphertext unchanged.
func (Plain) Decrypt(ciphertext string) ([]byte, error) {
	return []byte(ciphertext), nil
}

func (c *Client) decodeBody(ep Endpoint, raw []byte) (Envelope, error) {
	body := raw
	if ep.Encrypted {
		data := gjson.GetBytes(raw, "data")
		if data.Type == gjson.String {
			opened, err := c.cipher.Decrypt(data.Str)
			if err != nil {
				return Envelope{}, fmt.Errorf("%w: decrypting %s: %v", common.ErrTransport, ep.Path, err)
			}
			body = opened
		}
	}
	return ParseEnvelope(body, ep.RecordsPath)
}

// ParseEnvelope reads status, message, and rows from a JSON body.
func ParseEnvelope(body []byte, recordsPath string) (Envelope, error) {
	if !gjson.ValidBytes(body) {
		return Envelope{}, fmt.Errorf("%w: response is not valid JSON", common.ErrTransport)
	}
	if recordsPath == "" {
		recordsPath = DefaultRecordsPath
	}

	env := Envelope{
		Status:  gjson.GetBytes(body, "status").String(),
		Message: gjson.GetBytes(body, "message").String(),
	}

	rows := gjson.GetBytes(body, recordsPath)
	if !rows.IsArray() {
		return env, nil
	}
	rows.ForEach(func(_, row gjson.Result) bool {
		if !row.IsObject() {
			return true
		}
		if m, ok := row.Value().(map[string]any); ok {
			env.Records = append(env.Records, model.RawRecord(m))
		}
		return true
	})
	return env, nil
}
