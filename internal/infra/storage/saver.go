package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
)

// AsyncSaver writes snapshots off the simulation goroutine. Save never
// blocks; a snapshot still queued when a newer one arrives is replaced.
type AsyncSaver struct {
	repo    SnapshotRepository
	logger  *logger.Logger
	metrics *metrics.Collector
	timeout time.Duration

	queue chan character.Snapshot
	done  chan struct{}
}

// NewAsyncSaver creates a saver. Call Run to start writing.
func NewAsyncSaver(repo SnapshotRepository, m *metrics.Collector, log *logger.Logger) *AsyncSaver {
	return &AsyncSaver{
		repo:    repo,
		logger:  log,
		metrics: m,
		timeout: 5 * time.Second,
		queue:   make(chan character.Snapshot, 1),
		done:    make(chan struct{}),
	}
}

// Save implements the engine persistence port.
func (s *AsyncSaver) Save(snap character.Snapshot) {
	for {
		select {
		case s.queue <- snap:
			return
		default:
		}
		select {
		case <-s.queue:
			s.metrics.RecordSaveDropped()
		default:
		}
	}
}

// Run writes queued snapshots until ctx is cancelled, then flushes the
// last pending one.
func (s *AsyncSaver) Run(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case snap := <-s.queue:
			s.write(snap)
		case <-ctx.Done():
			select {
			case snap := <-s.queue:
				s.write(snap)
			default:
			}
			return
		}
	}
}

// Wait blocks until Run has returned.
func (s *AsyncSaver) Wait() {
	<-s.done
}

func (s *AsyncSaver) write(snap character.Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := s.store(ctx, snap)
	s.metrics.RecordSave(time.Since(start), err)
	if err != nil {
		s.logger.Error(fmt.Sprintf("save %s: %v", snap.Name, err))
	}
}

func (s *AsyncSaver) store(ctx context.Context, snap character.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return s.repo.Upsert(ctx, SnapshotRecord{
		Name:        snap.Name,
		Data:        data,
		Depth:       snap.Depth,
		RecordDepth: snap.RecordDepth,
	})
}

// LoadCharacter restores the named character, or creates a fresh one when
// nothing was saved. defaulted lists the fields that fell back to defaults.
func LoadCharacter(ctx context.Context, repo SnapshotRepository, name string, opts character.Options) (c *character.Character, defaulted []string, err error) {
	rec, err := repo.Get(ctx, name)
	if errors.Is(err, ErrNoSnapshot) {
		return character.New(name, opts), nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	c, defaulted = character.Restore(rec.Data, opts)
	return c, defaulted, nil
}

// LineWriter persists narration lines for one character. It implements
// events.LinePersister.
type LineWriter struct {
	repo    LogRepository
	name    string
	logger  *logger.Logger
	metrics *metrics.Collector
}

// NewLineWriter creates a narration persister for name.
func NewLineWriter(repo LogRepository, name string, m *metrics.Collector, log *logger.Logger) *LineWriter {
	return &LineWriter{repo: repo, name: name, logger: log, metrics: m}
}

func (w *LineWriter) AppendLine(line events.LogLine) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := w.repo.Append(ctx, w.name, line)
	w.metrics.RecordLine(err)
	if err != nil {
		w.logger.Warn(fmt.Sprintf("log line %d: %v", line.Seq, err))
	}
	return err
}

// ResumeLog seeds el with the newest stored lines so numbering continues.
func ResumeLog(ctx context.Context, repo LogRepository, name string, el *events.EventLog, limit int) error {
	seq, err := repo.LastSeq(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to read last log seq: %w", err)
	}
	recent, err := repo.Recent(ctx, name, limit)
	if err != nil {
		return fmt.Errorf("failed to read recent log: %w", err)
	}
	el.Resume(seq, recent)
	return nil
}
