package store

import (
    "encoding/json"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/suite"

    "github.com/zaqqye/homescreen_backend_v1/internal/defaults"
    "github.com/zaqqye/homescreen_backend_v1/internal/models"
)

type StoreTestSuite struct {
    suite.Suite
    dir   string
    store *Store
    clock time.Time
}

func (s *StoreTestSuite) SetupTest() {
    s.dir = s.T().TempDir()
    st, err := New(s.dir)
    s.Require().NoError(err)
    s.store = st

    // Deterministic clock; advance() moves it forward between writes.
    s.clock = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
    st.now = func() time.Time { return s.clock }
}

func (s *StoreTestSuite) advance(d time.Duration) {
    s.clock = s.clock.Add(d)
}

func (s *StoreTestSuite) code(err error) Code {
    s.Require().Error(err)
    se, ok := AsError(err)
    s.Require().True(ok, "expected a store error, got %v", err)
    return se.Code
}

func (s *StoreTestSuite) TestCreateReadRoundTrip() {
    payload := defaults.Payload()
    rec, err := s.store.Create(payload, "homepage")
    s.Require().NoError(err)
    s.Equal("homepage", rec.ID)
    s.Equal(SchemaVersion, rec.SchemaVersion)
    s.Equal(rec.CreatedAt, rec.UpdatedAt)

    got, err := s.store.Read("homepage")
    s.Require().NoError(err)
    s.Equal(payload, got.Data)
    s.Equal(rec, got)
}

func (s *StoreTestSuite) TestCreateGeneratesID() {
    rec, err := s.store.Create(defaults.Payload(), "")
    s.Require().NoError(err)
    s.Regexp(`^cfg-`, rec.ID)

    other, err := s.store.Create(defaults.Payload(), "")
    s.Require().NoError(err)
    s.NotEqual(rec.ID, other.ID)
}

func (s *StoreTestSuite) TestCreateDuplicate() {
    _, err := s.store.Create(defaults.Payload(), "dup")
    s.Require().NoError(err)

    _, err = s.store.Create(defaults.Payload(), "dup")
    s.Equal(CodeAlreadyExists, s.code(err))
}

func (s *StoreTestSuite) TestCreateInvalidPayload() {
    payload := defaults.Payload()
    payload.Text.HeadingColor = "red"

    _, err := s.store.Create(payload, "bad")
    s.Equal(CodeValidation, s.code(err))
    se, _ := AsError(err)
    s.Contains(se.Details, "Text headingColor must be a valid hex color (e.g., #000000)")

    _, statErr := os.Stat(filepath.Join(s.dir, "bad.json"))
    s.True(os.IsNotExist(statErr), "invalid payload must not be persisted")
}

func (s *StoreTestSuite) TestCreateRejectsUnsafeID() {
    _, err := s.store.Create(defaults.Payload(), "../escape")
    s.Equal(CodeValidation, s.code(err))
}

func (s *StoreTestSuite) TestUnsafeIDLooksMissing() {
    _, err := s.store.Read("../../etc/passwd")
    s.Equal(CodeNotFound, s.code(err))

    _, err = s.store.Update("../escape", defaults.Payload())
    s.Equal(CodeNotFound, s.code(err))

    s.Equal(CodeNotFound, s.code(s.store.Delete("../escape")))
}

func (s *StoreTestSuite) TestUpdatePreservesCreatedAt() {
    rec, err := s.store.Create(defaults.Payload(), "page")
    s.Require().NoError(err)
    created := rec.CreatedAt

    s.advance(time.Second)
    p1 := defaults.Payload()
    p1.Text.Heading = "First"
    rec1, err := s.store.Update("page", p1)
    s.Require().NoError(err)

    s.advance(time.Second)
    p2 := defaults.Payload()
    p2.Text.Heading = "Second"
    rec2, err := s.store.Update("page", p2)
    s.Require().NoError(err)

    s.Equal(created, rec1.CreatedAt)
    s.Equal(created, rec2.CreatedAt)

    t1, err := models.ParseTimestamp(rec1.UpdatedAt)
    s.Require().NoError(err)
    t2, err := models.ParseTimestamp(rec2.UpdatedAt)
    s.Require().NoError(err)
    s.True(t2.After(t1), "updatedAt must advance on every update")

    got, err := s.store.Read("page")
    s.Require().NoError(err)
    s.Equal("Second", got.Data.Text.Heading)
    s.Equal(SchemaVersion, got.SchemaVersion)
}

func (s *StoreTestSuite) TestUpdateMissing() {
    _, err := s.store.Update("ghost", defaults.Payload())
    s.Equal(CodeNotFound, s.code(err))
}

func (s *StoreTestSuite) TestUpdateMissingDefaultCreates() {
    payload := defaults.Payload()
    payload.Text.Heading = "Healed"
    rec, err := s.store.Update(DefaultID, payload)
    s.Require().NoError(err)
    s.Equal(DefaultID, rec.ID)
    s.Equal(rec.CreatedAt, rec.UpdatedAt)

    got, err := s.store.Read(DefaultID)
    s.Require().NoError(err)
    s.Equal("Healed", got.Data.Text.Heading)
}

func (s *StoreTestSuite) TestUpdateInvalidPayload() {
    _, err := s.store.Create(defaults.Payload(), "page")
    s.Require().NoError(err)

    payload := defaults.Payload()
    payload.Cta.PrimaryText = "   "
    _, err = s.store.Update("page", payload)
    s.Equal(CodeValidation, s.code(err))
}

func (s *StoreTestSuite) TestDeleteDefaultForbidden() {
    // Forbidden whether or not the record exists yet.
    s.Equal(CodeForbidden, s.code(s.store.Delete(DefaultID)))

    _, err := s.store.Read(DefaultID)
    s.Require().NoError(err)
    s.Equal(CodeForbidden, s.code(s.store.Delete(DefaultID)))
}

func (s *StoreTestSuite) TestDelete() {
    _, err := s.store.Create(defaults.Payload(), "gone")
    s.Require().NoError(err)
    s.Require().NoError(s.store.Delete("gone"))

    _, err = s.store.Read("gone")
    s.Equal(CodeNotFound, s.code(err))

    s.Equal(CodeNotFound, s.code(s.store.Delete("gone")))
}

func (s *StoreTestSuite) TestReadDefaultSeedsOnce() {
    first, err := s.store.Read(DefaultID)
    s.Require().NoError(err)
    s.Equal(DefaultID, first.ID)
    s.Equal(defaults.Payload(), first.Data)

    second, err := s.store.Read(DefaultID)
    s.Require().NoError(err)
    s.Equal(first, second)

    entries, err := os.ReadDir(s.dir)
    s.Require().NoError(err)
    s.Len(entries, 1)
}

func (s *StoreTestSuite) TestReadMissing() {
    _, err := s.store.Read("nope")
    s.Equal(CodeNotFound, s.code(err))
}

func (s *StoreTestSuite) TestReadCorruptPayload() {
    rec := models.StoredConfig{
        ID:            "broken",
        SchemaVersion: SchemaVersion,
        CreatedAt:     models.Timestamp(s.clock),
        UpdatedAt:     models.Timestamp(s.clock),
        Data:          defaults.Payload(),
    }
    rec.Data.Text.HeadingColor = "not-a-color"
    raw, err := json.Marshal(rec)
    s.Require().NoError(err)
    s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "broken.json"), raw, 0o644))

    _, err = s.store.Read("broken")
    s.Equal(CodeInvalidConfig, s.code(err))
    se, _ := AsError(err)
    s.NotEmpty(se.Details)
}

func (s *StoreTestSuite) TestReadUnparseableFile() {
    s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "junk.json"), []byte("{nope"), 0o644))

    _, err := s.store.Read("junk")
    s.Equal(CodeInternal, s.code(err))
}

func (s *StoreTestSuite) TestListOrdering() {
    _, err := s.store.Create(defaults.Payload(), "a")
    s.Require().NoError(err)
    s.advance(time.Second)
    _, err = s.store.Create(defaults.Payload(), "b")
    s.Require().NoError(err)

    metas, err := s.store.List()
    s.Require().NoError(err)
    s.Require().Len(metas, 2)
    s.Equal("b", metas[0].ID)
    s.Equal("a", metas[1].ID)

    // Touching "a" moves it to the front.
    s.advance(time.Second)
    _, err = s.store.Update("a", defaults.Payload())
    s.Require().NoError(err)

    metas, err = s.store.List()
    s.Require().NoError(err)
    s.Equal("a", metas[0].ID)
    s.Equal("b", metas[1].ID)
}

func (s *StoreTestSuite) TestListSkipsCorruptFiles() {
    _, err := s.store.Create(defaults.Payload(), "good")
    s.Require().NoError(err)
    s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "corrupt.json"), []byte("{oops"), 0o644))

    metas, err := s.store.List()
    s.Require().NoError(err)
    s.Require().Len(metas, 1)
    s.Equal("good", metas[0].ID)
}

func (s *StoreTestSuite) TestListSkipsNonRecordJSON() {
    _, err := s.store.Create(defaults.Payload(), "good")
    s.Require().NoError(err)
    // Valid JSON, but nothing a StoredConfig recognizes: decodes to an empty
    // record and must not appear as a blank row.
    s.Require().NoError(os.WriteFile(filepath.Join(s.dir, "notes.json"), []byte(`{"foo": 1}`), 0o644))

    metas, err := s.store.List()
    s.Require().NoError(err)
    s.Require().Len(metas, 1)
    s.Equal("good", metas[0].ID)
}

func (s *StoreTestSuite) TestListMetadataOnly() {
    _, err := s.store.Create(defaults.Payload(), "meta")
    s.Require().NoError(err)

    metas, err := s.store.List()
    s.Require().NoError(err)
    s.Require().Len(metas, 1)

    raw, err := json.Marshal(metas[0])
    s.Require().NoError(err)
    s.NotContains(string(raw), "carousel")
}

func TestStoreTestSuite(t *testing.T) {
    suite.Run(t, new(StoreTestSuite))
}
