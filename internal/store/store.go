// Package store persists home-screen configuration records as one JSON file
// per record. It is the only component that touches disk; every failure it
// can produce is a typed *Error with a machine-readable code.
package store

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "regexp"
    "sort"
    "strings"
    "time"

    "github.com/google/uuid"

    "github.com/zaqqye/homescreen_backend_v1/internal/defaults"
    "github.com/zaqqye/homescreen_backend_v1/internal/log"
    "github.com/zaqqye/homescreen_backend_v1/internal/models"
    "github.com/zaqqye/homescreen_backend_v1/internal/validation"
)

const (
    // DefaultID is the reserved record the mobile app reads. It is created
    // on first access and can never be deleted.
    DefaultID = "default"

    // SchemaVersion is stamped onto every record the store writes.
    SchemaVersion = 1
)

// Record identifiers double as file names, so the character set is kept
// filesystem-safe.
var idRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Store is a file-backed repository of StoredConfig records. Concurrent
// writers to the same identifier are not serialized; the last write wins.
// Writes are atomic, so readers never observe a half-written file.
type Store struct {
    dir string
    now func() time.Time
}

// New opens (creating if necessary) a store rooted at dir.
func New(dir string) (*Store, error) {
    if err := os.MkdirAll(dir, 0o755); err != nil {
        return nil, fmt.Errorf("create data dir: %w", err)
    }
    return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) path(id string) string {
    return filepath.Join(s.dir, id+".json")
}

// lookupErr guards every id that reaches the filesystem: an id that could
// escape the data dir is reported as plain not-found.
func lookupErr(id string) error {
    if !idRe.MatchString(id) {
        return newError(CodeNotFound, fmt.Sprintf("Configuration %q not found", id))
    }
    return nil
}

// Create validates the payload and writes a new record. An empty id asks the
// store to generate one.
func (s *Store) Create(payload models.ConfigPayload, id string) (*models.StoredConfig, error) {
    if res := validation.ValidatePayload(payload); !res.IsValid {
        return nil, newError(CodeValidation, "Invalid configuration payload", res.Errors...)
    }

    if id == "" {
        id = "cfg-" + uuid.NewString()
    } else if !idRe.MatchString(id) {
        return nil, newError(CodeValidation, "Invalid configuration id",
            "id may only contain letters, digits, '.', '_' and '-'")
    }

    if _, err := os.Stat(s.path(id)); err == nil {
        return nil, newError(CodeAlreadyExists, fmt.Sprintf("Configuration %q already exists", id))
    } else if !os.IsNotExist(err) {
        log.Errorf("store: stat %s: %v", id, err)
        return nil, newError(CodeInternal, "Failed to create configuration")
    }

    now := models.Timestamp(s.now())
    rec := &models.StoredConfig{
        ID:            id,
        SchemaVersion: SchemaVersion,
        CreatedAt:     now,
        UpdatedAt:     now,
        Data:          payload,
    }
    if err := s.write(rec); err != nil {
        return nil, err
    }
    return rec, nil
}

// Read returns the record for id. Reading the reserved default id when no
// record exists seeds a fresh one from the built-in content. A record that
// exists but no longer validates is surfaced as INVALID_CONFIG rather than
// served.
func (s *Store) Read(id string) (*models.StoredConfig, error) {
    if err := lookupErr(id); err != nil {
        return nil, err
    }
    raw, err := os.ReadFile(s.path(id))
    if os.IsNotExist(err) {
        if id == DefaultID {
            return s.Create(defaults.Payload(), DefaultID)
        }
        return nil, newError(CodeNotFound, fmt.Sprintf("Configuration %q not found", id))
    }
    if err != nil {
        log.Errorf("store: read %s: %v", id, err)
        return nil, newError(CodeInternal, "Failed to read configuration")
    }

    var rec models.StoredConfig
    if err := json.Unmarshal(raw, &rec); err != nil {
        log.Errorf("store: parse %s: %v", id, err)
        return nil, newError(CodeInternal, "Failed to parse configuration")
    }

    if res := validation.ValidatePayload(rec.Data); !res.IsValid {
        return nil, newError(CodeInvalidConfig, "Stored configuration is invalid", res.Errors...)
    }
    return &rec, nil
}

// Update validates the payload and replaces the record's content, preserving
// createdAt and schemaVersion and advancing updatedAt. Updating a missing
// default record transparently creates it instead.
func (s *Store) Update(id string, payload models.ConfigPayload) (*models.StoredConfig, error) {
    if res := validation.ValidatePayload(payload); !res.IsValid {
        return nil, newError(CodeValidation, "Invalid configuration payload", res.Errors...)
    }
    if err := lookupErr(id); err != nil {
        return nil, err
    }

    raw, err := os.ReadFile(s.path(id))
    if os.IsNotExist(err) {
        if id == DefaultID {
            return s.Create(payload, DefaultID)
        }
        return nil, newError(CodeNotFound, fmt.Sprintf("Configuration %q not found", id))
    }
    if err != nil {
        log.Errorf("store: read %s: %v", id, err)
        return nil, newError(CodeInternal, "Failed to read configuration")
    }

    var rec models.StoredConfig
    if err := json.Unmarshal(raw, &rec); err != nil {
        log.Errorf("store: parse %s: %v", id, err)
        return nil, newError(CodeInternal, "Failed to parse configuration")
    }

    rec.ID = id
    rec.Data = payload
    rec.UpdatedAt = models.Timestamp(s.now())
    if err := s.write(&rec); err != nil {
        return nil, err
    }
    return &rec, nil
}

// Delete removes the record for id. The reserved default record is
// permanently protected.
func (s *Store) Delete(id string) error {
    if id == DefaultID {
        return newError(CodeForbidden, "The default configuration cannot be deleted")
    }
    if err := lookupErr(id); err != nil {
        return err
    }
    if _, err := os.Stat(s.path(id)); os.IsNotExist(err) {
        return newError(CodeNotFound, fmt.Sprintf("Configuration %q not found", id))
    }
    if err := os.Remove(s.path(id)); err != nil {
        log.Errorf("store: remove %s: %v", id, err)
        return newError(CodeInternal, "Failed to delete configuration")
    }
    return nil
}

// List returns metadata for every readable record, most recently updated
// first. A corrupt file is skipped, never allowed to break the whole index.
func (s *Store) List() ([]models.ConfigMeta, error) {
    entries, err := os.ReadDir(s.dir)
    if err != nil {
        log.Errorf("store: list %s: %v", s.dir, err)
        return nil, newError(CodeInternal, "Failed to list configurations")
    }

    metas := make([]models.ConfigMeta, 0, len(entries))
    for _, entry := range entries {
        name := entry.Name()
        if entry.IsDir() || !strings.HasSuffix(name, ".json") {
            continue
        }
        raw, err := os.ReadFile(filepath.Join(s.dir, name))
        if err != nil {
            log.Warnf("store: skipping unreadable %s: %v", name, err)
            continue
        }
        var rec models.StoredConfig
        if err := json.Unmarshal(raw, &rec); err != nil {
            log.Warnf("store: skipping corrupt %s: %v", name, err)
            continue
        }
        // Valid JSON that is not a record (no id) would list as a blank row.
        if rec.ID == "" {
            log.Warnf("store: skipping %s: not a configuration record", name)
            continue
        }
        metas = append(metas, rec.Meta())
    }

    sort.SliceStable(metas, func(i, j int) bool {
        ti, erri := models.ParseTimestamp(metas[i].UpdatedAt)
        tj, errj := models.ParseTimestamp(metas[j].UpdatedAt)
        if erri != nil || errj != nil {
            return metas[i].UpdatedAt > metas[j].UpdatedAt
        }
        return ti.After(tj)
    })
    return metas, nil
}

// EnsureDefault materializes the reserved default record if it is missing.
// Called once at boot so the mobile app never sees an empty store.
func (s *Store) EnsureDefault() (*models.StoredConfig, error) {
    return s.Read(DefaultID)
}

// write atomically replaces the record file: content lands in a temp file in
// the same directory, then renames over the target.
func (s *Store) write(rec *models.StoredConfig) error {
    data, err := json.MarshalIndent(rec, "", "  ")
    if err != nil {
        log.Errorf("store: encode %s: %v", rec.ID, err)
        return newError(CodeInternal, "Failed to encode configuration")
    }

    tmp, err := os.CreateTemp(s.dir, ".tmp-*")
    if err != nil {
        log.Errorf("store: temp file for %s: %v", rec.ID, err)
        return newError(CodeInternal, "Failed to write configuration")
    }
    tmpName := tmp.Name()
    if _, err := tmp.Write(data); err != nil {
        tmp.Close()
        os.Remove(tmpName)
        log.Errorf("store: write %s: %v", rec.ID, err)
        return newError(CodeInternal, "Failed to write configuration")
    }
    if err := tmp.Close(); err != nil {
        os.Remove(tmpName)
        log.Errorf("store: close %s: %v", rec.ID, err)
        return newError(CodeInternal, "Failed to write configuration")
    }
    if err := os.Rename(tmpName, s.path(rec.ID)); err != nil {
        os.Remove(tmpName)
        log.Errorf("store: rename %s: %v", rec.ID, err)
        return newError(CodeInternal, "Failed to write configuration")
    }
    return nil
}
