// Package importexport moves configuration records between the store and
// standalone JSON files. Exports are full StoredConfig envelopes; imports
// accept either that wrapped shape or a bare payload, because both exist in
// the wild.
package importexport

import (
    "encoding/json"
    "io"

    "github.com/zaqqye/homescreen_backend_v1/internal/models"
    "github.com/zaqqye/homescreen_backend_v1/internal/store"
    "github.com/zaqqye/homescreen_backend_v1/internal/validation"
)

// Export writes the record for id to w as indented JSON, the same format the
// store keeps on disk.
func Export(st *store.Store, id string, w io.Writer) error {
    rec, err := st.Read(id)
    if err != nil {
        return err
    }
    enc := json.NewEncoder(w)
    enc.SetIndent("", "  ")
    return enc.Encode(rec)
}

// Import validates data and upserts it into the store. A wrapped export keeps
// its own id; a bare payload lands on the default record. The stored record
// is returned on success; failures are typed store errors.
func Import(st *store.Store, data []byte) (*models.StoredConfig, error) {
    var raw any
    if err := json.Unmarshal(data, &raw); err != nil {
        return nil, &store.Error{
            Code:    store.CodeValidation,
            Message: "Import file is not valid JSON",
        }
    }

    if res := validation.ValidateImportData(raw); !res.IsValid {
        return nil, &store.Error{
            Code:    store.CodeValidation,
            Message: "Invalid import data",
            Details: res.Errors,
        }
    }

    id := store.DefaultID
    payloadBytes := data
    if m, ok := raw.(map[string]any); ok {
        if _, wrapped := m["data"]; wrapped {
            var rec models.StoredConfig
            // Validated above; the envelope decodes cleanly.
            _ = json.Unmarshal(data, &rec)
            id = rec.ID
            payloadBytes, _ = json.Marshal(rec.Data)
        }
    }

    var payload models.ConfigPayload
    _ = json.Unmarshal(payloadBytes, &payload)

    rec, err := st.Update(id, payload)
    if err == nil {
        return rec, nil
    }
    if store.CodeOf(err) == store.CodeNotFound {
        return st.Create(payload, id)
    }
    return nil, err
}

// Check dry-runs an import: it reports what validation would say without
// touching the store.
func Check(data []byte) validation.Result {
    var raw any
    if err := json.Unmarshal(data, &raw); err != nil {
        return validation.Result{IsValid: false, Errors: []string{"Import data must be a valid object"}}
    }
    return validation.ValidateImportData(raw)
}
