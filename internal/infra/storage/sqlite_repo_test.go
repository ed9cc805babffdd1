package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/domain/resource"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("InitSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSnapshotRepository(openTestDB(t))

	if _, err := repo.Get(ctx, "Ada"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("Get on empty db = %v, want ErrNoSnapshot", err)
	}

	rec := SnapshotRecord{Name: "Ada", Data: []byte(`{"name":"Ada","level":2}`), Depth: 3, RecordDepth: 7}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	rec.Data = []byte(`{"name":"Ada","level":3}`)
	rec.Depth = 4
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "Ada")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got.Data) != `{"name":"Ada","level":3}` || got.Depth != 4 || got.RecordDepth != 7 {
		t.Errorf("unexpected record %+v", got)
	}

	if err := repo.Delete(ctx, "Ada"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "Ada"); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Get after delete = %v", err)
	}
}

func TestLogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteLogRepository(openTestDB(t))

	if seq, err := repo.LastSeq(ctx, "Ada"); err != nil || seq != 0 {
		t.Fatalf("LastSeq on empty = %d, %v", seq, err)
	}

	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, msg := range []string{"one", "two", "three"} {
		line := events.LogLine{Seq: int64(i + 1), Time: now, Kind: events.KindLine, Message: msg, Style: narration.StyleCombat}
		if err := repo.Append(ctx, "Ada", line); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	repo.Append(ctx, "Grace", events.LogLine{Seq: 9, Time: now, Kind: events.KindModal, Title: "t", Message: "other"})

	recent, err := repo.Recent(ctx, "Ada", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Message != "two" || recent[1].Message != "three" {
		t.Errorf("recent = %+v", recent)
	}
	if recent[0].Style != narration.StyleCombat || recent[0].Kind != events.KindLine {
		t.Errorf("style or kind lost: %+v", recent[0])
	}
	if seq, _ := repo.LastSeq(ctx, "Ada"); seq != 3 {
		t.Errorf("LastSeq = %d, want 3", seq)
	}

	el := events.NewEventLog(nil, 10)
	if err := ResumeLog(ctx, repo, "Ada", el, 10); err != nil {
		t.Fatalf("ResumeLog: %v", err)
	}
	if next := el.Append(events.LogLine{Kind: events.KindLine, Message: "four"}); next.Seq != 4 {
		t.Errorf("resumed seq = %d, want 4", next.Seq)
	}
}

func TestAsyncSaverRoundTrip(t *testing.T) {
	repo := NewSQLiteSnapshotRepository(openTestDB(t))
	m := metrics.New()
	saver := NewAsyncSaver(repo, m, logger.Discard())

	c := character.New("Ada", character.Options{})
	c.ModifyResource(resource.Iron, 12)
	c.RecordDepth = 6
	saver.Save(c.Snapshot())
	c.ModifyResource(resource.Iron, 8)
	saver.Save(c.Snapshot())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	saver.Run(ctx)
	saver.Wait()

	loaded, defaulted, err := LoadCharacter(context.Background(), repo, "Ada", character.Options{})
	if err != nil {
		t.Fatalf("LoadCharacter: %v", err)
	}
	if len(defaulted) != 0 {
		t.Errorf("defaulted fields %v", defaulted)
	}
	if loaded.Resource(resource.Iron) != 20 || loaded.RecordDepth != 6 {
		t.Errorf("loaded iron = %d record = %d", loaded.Resource(resource.Iron), loaded.RecordDepth)
	}
	if m.SavesDropped != 1 || m.SavesWritten != 1 {
		t.Errorf("dropped = %d written = %d, want 1 and 1", m.SavesDropped, m.SavesWritten)
	}
}

func TestLoadCharacterFresh(t *testing.T) {
	repo := NewSQLiteSnapshotRepository(openTestDB(t))
	c, _, err := LoadCharacter(context.Background(), repo, "Newcomer", character.Options{})
	if err != nil {
		t.Fatalf("LoadCharacter: %v", err)
	}
	if c.Name != "Newcomer" || c.Level != 1 {
		t.Errorf("fresh character = %s level %d", c.Name, c.Level)
	}
}

func TestLineWriter(t *testing.T) {
	repo := NewSQLiteLogRepository(openTestDB(t))
	m := metrics.New()
	w := NewLineWriter(repo, "Ada", m, logger.Discard())

	if err := w.AppendLine(events.LogLine{Seq: 1, Time: time.Now(), Kind: events.KindLine, Message: "hello"}); err != nil {
		t.Fatalf("AppendLine: %v", err)
	}
	if err := w.AppendLine(events.LogLine{Seq: 1, Time: time.Now(), Kind: events.KindLine, Message: "dup"}); err == nil {
		t.Errorf("duplicate seq should fail")
	}
	if m.LinesWritten != 2 || m.LineErrors != 1 {
		t.Errorf("lines = %d errors = %d", m.LinesWritten, m.LineErrors)
	}
}
