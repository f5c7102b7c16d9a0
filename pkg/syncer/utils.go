package syncer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/inkstone/contentcore/pkg/repository"
)

// semanticText renders the embedding input: the semantic field values joined
// with "#", in declared order. Absent and nil fields contribute an empty
// segment so the layout stays stable across documents.
func (s *Syncer) semanticText(doc repository.Document) string {
	parts := make([]string, len(s.cfg.SemanticFields))
	for i, field := range s.cfg.SemanticFields {
		value, ok := doc[field]
		if !ok || value == nil {
			continue
		}
		if text, isString := value.(string); isString {
			parts[i] = text
		} else {
			parts[i] = fmt.Sprint(value)
		}
	}
	return strings.Join(parts, "#")
}

// semanticChange reports whether the patch touches any semantic field with a
// present, non-empty value. Empty strings and nils do not trigger
// re-embedding; they are treated as payload noise, not new content.
func (s *Syncer) semanticChange(patch repository.Document) bool {
	for _, field := range s.cfg.SemanticFields {
		value, ok := patch[field]
		if !ok || value == nil {
			continue
		}
		if text, isString := value.(string); isString && strings.TrimSpace(text) == "" {
			continue
		}
		return true
	}
	return false
}

// semanticFieldsIn returns which semantic fields the patch names at all.
func (s *Syncer) semanticFieldsIn(patch repository.Document) []string {
	var named []string
	for _, field := range s.cfg.SemanticFields {
		if _, ok := patch[field]; ok {
			named = append(named, field)
		}
	}
	return named
}

// payloadSubset picks the configured payload fields out of doc. Only present
// fields are copied; the point payload never carries explicit nulls.
func (s *Syncer) payloadSubset(doc repository.Document) map[string]any {
	payload := make(map[string]any)
	for _, field := range s.cfg.PayloadFields {
		if value, ok := doc[field]; ok && value != nil {
			payload[field] = value
		}
	}
	return payload
}

// mergeDocuments overlays patch onto base without mutating either.
func mergeDocuments(base, patch repository.Document) repository.Document {
	merged := make(repository.Document, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// uidOf extracts the external identifier, requiring a non-empty string.
func (s *Syncer) uidOf(doc repository.Document) (string, bool) {
	value, ok := doc[s.cfg.IDField]
	if !ok {
		return "", false
	}
	uid, isString := value.(string)
	if !isString || uid == "" {
		return "", false
	}
	return uid, true
}

// embed calls the provider with the operation timeout and records the call.
func (s *Syncer) embed(ctx context.Context, text string) ([]float32, error) {
	callCtx, cancel := s.opCtx(ctx)
	defer cancel()

	start := time.Now()
	vector, err := s.embedder.Embed(callCtx, text)
	status := "ok"
	if err != nil {
		status = "failed"
	}
	s.recorder.ObserveEmbeddingCall(status, time.Since(start).Seconds())
	return vector, err
}
