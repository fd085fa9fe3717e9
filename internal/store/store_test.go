package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/talentquiz/internal/scoring"
	"github.com/abhisek/talentquiz/internal/session"
	"github.com/abhisek/talentquiz/internal/talent"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	s, err := Open(context.Background(), DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(id string, variant talent.Variant, submitted time.Time) *Result {
	return &Result{
		ID:          id,
		Respondent:  "Mia",
		Variant:     variant,
		Answers:     scoring.Answers{0: 5, 1: 3, 39: 1},
		Scores:      scoring.ScoreTable{talent.CategoryJ: 5, talent.CategoryE: 4},
		StartedAt:   submitted.Add(-4 * time.Minute),
		SubmittedAt: submitted,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Driver() != DriverSQLite {
		t.Errorf("Driver() = %q, want sqlite", s.Driver())
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", ""); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSchemaCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"results", "llm_requests", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestResultSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	in := testResult("r1", talent.VariantStatement, now)
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if in.Sequence == 0 {
		t.Error("Save should assign a sequence")
	}

	got, err := repo.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Respondent != "Mia" || got.Variant != talent.VariantStatement {
		t.Errorf("got %+v", got)
	}
	if got.Answers[39] != 1 || len(got.Answers) != 3 {
		t.Errorf("answers = %v", got.Answers)
	}
	if got.Scores[talent.CategoryJ] != 5 {
		t.Errorf("scores = %v", got.Scores)
	}
	if !got.SubmittedAt.Equal(now) {
		t.Errorf("submitted_at = %v, want %v", got.SubmittedAt, now)
	}
	if got.SubmittedAt.Sub(got.StartedAt) != 4*time.Minute {
		t.Errorf("duration = %v, want 4m", got.SubmittedAt.Sub(got.StartedAt))
	}
}

func TestResultGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.ResultRepo().Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResultSave_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	if err := repo.Save(ctx, testResult("dup", talent.VariantSelfRating, now)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, testResult("dup", talent.VariantSelfRating, now)); err == nil {
		t.Error("expected error saving duplicate id")
	}
}

func TestResultList(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		v := talent.VariantSelfRating
		if i%2 == 1 {
			v = talent.VariantStatement
		}
		if err := repo.Save(ctx, testResult(fmt.Sprintf("r%d", i), v, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("len = %d, want 5", len(all))
	}
	if all[0].ID != "r4" || all[4].ID != "r0" {
		t.Errorf("order = %s..%s, want newest first", all[0].ID, all[4].ID)
	}

	limited, err := repo.List(ctx, QueryOpts{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "r3" {
		t.Errorf("limited = %v", ids(limited))
	}

	stmt, err := repo.List(ctx, QueryOpts{Variant: talent.VariantStatement})
	if err != nil {
		t.Fatalf("list by variant: %v", err)
	}
	if len(stmt) != 2 {
		t.Errorf("statement results = %v, want r3 r1", ids(stmt))
	}

	ranged, err := repo.List(ctx, QueryOpts{From: base.Add(time.Minute), To: base.Add(3 * time.Minute)})
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(ranged) != 3 {
		t.Errorf("ranged = %v, want r3 r2 r1", ids(ranged))
	}
}

func TestResultCountAndDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, testResult(fmt.Sprintf("c%d", i), talent.VariantSelfRating, now)); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	n, err := repo.Count(ctx)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}

	deleted, err := repo.DeleteAll(ctx)
	if err != nil || deleted != 3 {
		t.Fatalf("DeleteAll = %d, %v; want 3", deleted, err)
	}

	n, _ = repo.Count(ctx)
	if n != 0 {
		t.Errorf("Count after delete = %d, want 0", n)
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, ok := range []bool{true, false} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      "insight",
			InputTokens:  100 + i,
			OutputTokens: 50,
			LatencyMs:    1200,
			Success:      ok,
			ErrorMessage: map[bool]string{true: "", false: "boom"}[ok],
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.RecentLLMRequests(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Success || events[0].ErrorMessage != "boom" {
		t.Errorf("newest event = %+v, want failed call", events[0])
	}
	if !events[1].Success || events[1].InputTokens != 100 {
		t.Errorf("oldest event = %+v", events[1])
	}
	if events[0].Sequence <= events[1].Sequence {
		t.Error("expected newest first by sequence")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Open already seeded the counter; a second one shares the row.
	sc, err := newSequenceCounter(ctx, s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM results WHERE id = ? AND variant = ?"
	if got := rebind(DriverSQLite, q); got != q {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
	want := "SELECT * FROM results WHERE id = $1 AND variant = $2"
	if got := rebind(DriverPostgres, q); got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{"", DriverSQLite, false},
		{"SQLite", DriverSQLite, false},
		{"postgres", DriverPostgres, false},
		{"pgx", DriverPostgres, false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDriver(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDriver(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TALENTQUIZ_DB", filepath.Join(dir, "explicit", "q.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "explicit", "q.db") {
		t.Errorf("path = %q", p)
	}
	if _, err := os.Stat(filepath.Join(dir, "explicit")); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	t.Setenv("TALENTQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if p != filepath.Join(dir, "talentquiz", "talentquiz.db") {
		t.Errorf("path = %q", p)
	}
}

func ids(rs []Result) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestNewResult(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := session.New("quiz-1", talent.VariantSelfRating, start)
	for i := range st.Questions {
		var err error
		st, err = session.Select(st, 4)
		if err != nil {
			t.Fatal(err)
		}
		st, err = session.Advance(st, start.Add(time.Duration(i+1)*time.Second))
		if err != nil {
			t.Fatal(err)
		}
	}

	a := NewResult(st, "Mia")
	b := NewResult(st, "Mia")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
	if a.Respondent != "Mia" || a.Variant != talent.VariantSelfRating {
		t.Errorf("result = %+v", a)
	}
	if a.Scores.Total() != 160 || len(a.Answers) != 40 {
		t.Errorf("total = %d, answers = %d", a.Scores.Total(), len(a.Answers))
	}

	a.Answers[0] = 1
	if st.Answers[0] != 4 {
		t.Error("result answers should be a copy")
	}

	s := openTestStore(t)
	if err := s.ResultRepo().Save(context.Background(), a); err != nil {
		t.Fatalf("save converted result: %v", err)
	}
}
