package usecase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RemoteCallError wraps a failed remote procedure call. Message is the
// human-readable text extracted from the provider error and is shown verbatim.
type RemoteCallError struct {
	Procedure string
	Message   string
	Err       error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Procedure, e.Message)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func newRemoteCallError(procedure string, err error) *RemoteCallError {
	return &RemoteCallError{Procedure: procedure, Message: ExtractRemoteMessage(err), Err: err}
}

// ExtractRemoteMessage pulls a readable message out of an error whose text may
// embed a JSON document, e.g. `edge function returned 400: {"error":"CPF inválido"}`.
// It falls back to the full error text.
func ExtractRemoteMessage(err error) string {
	if err == nil {
		return ""
	}
	var rce *RemoteCallError
	if errors.As(err, &rce) && rce.Message != "" {
		return rce.Message
	}

	text := err.Error()
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return text
	}

	var doc map[string]any
	if jsonErr := json.Unmarshal([]byte(text[start:end+1]), &doc); jsonErr != nil {
		return text
	}
	if msg := messageFromDoc(doc); msg != "" {
		return msg
	}
	return text
}

func messageFromDoc(doc map[string]any) string {
	for _, key := range []string{"error", "message", "mensagem", "details", "detail", "erro"} {
		switch v := doc[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case map[string]any:
			if s := messageFromDoc(v); s != "" {
				return s
			}
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					if s := messageFromDoc(m); s != "" {
						return s
					}
				}
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}
