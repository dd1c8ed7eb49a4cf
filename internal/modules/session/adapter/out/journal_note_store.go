package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusfence/internal/modules/session/domain"
	sessionout "focusfence/internal/modules/session/port/out"
	"focusfence/internal/platform/markdown"
	"focusfence/internal/platform/slug"
)

// JournalNoteStore writes one markdown note per finished session, filed by
// local calendar day.
type JournalNoteStore struct {
	dir  string
	zone *time.Location
}

type noteMeta struct {
	SchemaVersion  int     `yaml:"schema_version"`
	ID             string  `yaml:"id"`
	Origin         string  `yaml:"origin"`
	Outcome        string  `yaml:"outcome"`
	StartedAt      string  `yaml:"started_at"`
	EndedAt        string  `yaml:"ended_at"`
	PlannedMinutes int     `yaml:"planned_minutes"`
	ElapsedSeconds int     `yaml:"elapsed_seconds"`
	Progress       float64 `yaml:"progress"`
}

func NewJournalNoteStore(dir string, zone *time.Location) sessionout.JournalStore {
	return &JournalNoteStore{dir: dir, zone: zone}
}

func (s *JournalNoteStore) Write(_ context.Context, record domain.Record) (string, error) {
	started := record.StartedAt.In(s.zone)
	dir := filepath.Join(s.dir, started.Format("2006"), started.Format("01"), started.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	name := slug.Join(started.Format("150405"), string(record.Outcome), record.ID) + ".md"
	path := filepath.Join(dir, name)

	meta := noteMeta{
		SchemaVersion:  domain.SchemaVersion,
		ID:             record.ID,
		Origin:         string(record.Origin),
		Outcome:        string(record.Outcome),
		StartedAt:      started.Format(time.RFC3339),
		EndedAt:        record.EndedAt.In(s.zone).Format(time.RFC3339),
		PlannedMinutes: record.PlannedSeconds / 60,
		ElapsedSeconds: record.ElapsedTicks,
		Progress:       record.Progress,
	}
	body := fmt.Sprintf("# Focus session %s\n\n- Outcome: %s\n- Planned: %d minutes\n- Focused: %s\n- Tree grown: %.0f%%\n",
		started.Format("2006-01-02 15:04"),
		record.Outcome,
		record.PlannedSeconds/60,
		(time.Duration(record.ElapsedTicks) * time.Second).String(),
		record.Progress*100,
	)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write journal note: %w", err)
	}
	return path, nil
}
