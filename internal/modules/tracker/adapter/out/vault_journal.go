package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fittrack/internal/modules/tracker/domain"
	trackerout "fittrack/internal/modules/tracker/port/out"
	"fittrack/internal/platform/datekey"
	"fittrack/internal/platform/markdown"
	"fittrack/internal/platform/numfmt"
)

const journalSchemaVersion = 1

var journalBlock = markdown.Block{
	Start: "<!-- fittrack:entry:start -->",
	End:   "<!-- fittrack:entry:end -->",
}

type journalMeta struct {
	SchemaVersion int      `yaml:"schema_version"`
	ID            string   `yaml:"id,omitempty"`
	Date          string   `yaml:"date"`
	Weight        *float64 `yaml:"weight"`
	Steps         *int     `yaml:"steps"`
	Water         *int     `yaml:"water"`
}

// VaultJournal writes one markdown note per entry under <vault>/journal/YYYY/MM.
// Only the frontmatter and the marked block are generated; the rest of a note is
// left to the user.
type VaultJournal struct {
	root string
}

func NewVaultJournal(vaultPath string) trackerout.JournalProjector {
	return &VaultJournal{root: filepath.Join(vaultPath, "journal")}
}

func (j *VaultJournal) notePath(date string) string {
	return filepath.Join(j.root, date[:4], date[5:7], date+".md")
}

func (j *VaultJournal) Project(_ context.Context, entry domain.Entry) error {
	if !datekey.Valid(entry.Date) {
		return fmt.Errorf("journal note for invalid date %q", entry.Date)
	}
	path := j.notePath(entry.Date)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}
	body, err := j.userBody(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		body = "# " + datekey.Long(entry.Date) + "\n"
	}
	body = journalBlock.Replace(body, renderMeasurements(entry))

	meta := journalMeta{
		SchemaVersion: journalSchemaVersion,
		ID:            entry.ID,
		Date:          entry.Date,
		Weight:        entry.Weight,
		Steps:         entry.Steps,
		Water:         entry.Water,
	}
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write journal note: %w", err)
	}
	return nil
}

// Remove strips generated content; a note left with only its heading is deleted.
func (j *VaultJournal) Remove(_ context.Context, entry domain.Entry) error {
	if !datekey.Valid(entry.Date) {
		return nil
	}
	return j.strip(j.notePath(entry.Date), entry.Date)
}

// Reset strips generated content from every dated note in the journal. Files
// outside the YYYY/MM/<date>.md layout belong to the user and are not touched;
// notes with unreadable frontmatter are skipped.
func (j *VaultJournal) Reset(_ context.Context) error {
	err := filepath.WalkDir(j.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		date, ok := j.noteDate(path)
		if !ok {
			return nil
		}
		if err := j.strip(path, date); err != nil {
			if errors.Is(err, markdown.ErrInvalidFrontmatter) {
				slog.Warn("skipping journal note with unreadable frontmatter", "path", path, "error", err)
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reset journal: %w", err)
	}
	return nil
}

// noteDate returns the date key of a generated note path.
func (j *VaultJournal) noteDate(path string) (string, bool) {
	date := strings.TrimSuffix(filepath.Base(path), ".md")
	if filepath.Ext(path) != ".md" || !datekey.Valid(date) {
		return "", false
	}
	return date, filepath.Clean(path) == filepath.Clean(j.notePath(date))
}

func (j *VaultJournal) strip(path, date string) error {
	body, err := j.userBody(path)
	if err != nil {
		return err
	}
	body = journalBlock.Remove(body)
	if isBlankNote(body, date) {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove journal note: %w", err)
		}
		return nil
	}
	rendered, err := markdown.Render(journalMeta{SchemaVersion: journalSchemaVersion, Date: date}, body)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write journal note: %w", err)
	}
	return nil
}

// userBody returns the note body without frontmatter, or "" when the note is absent.
func (j *VaultJournal) userBody(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read journal note: %w", err)
	}
	var meta journalMeta
	body, err := markdown.Split(string(b), &meta)
	if err != nil {
		return "", err
	}
	return body, nil
}

func isBlankNote(body, date string) bool {
	trimmed := strings.TrimSpace(body)
	return trimmed == "" || trimmed == "# "+datekey.Long(date)
}

func renderMeasurements(e domain.Entry) string {
	lines := []string{}
	if e.Weight != nil {
		lines = append(lines, fmt.Sprintf("- Weight: %s lbs", numfmt.Pounds(*e.Weight)))
	}
	if e.Steps != nil {
		lines = append(lines, fmt.Sprintf("- Steps: %s", numfmt.Count(*e.Steps)))
	}
	if e.Water != nil {
		lines = append(lines, fmt.Sprintf("- Water: %d %s", *e.Water, numfmt.Plural(*e.Water, "cup", "cups")))
	}
	if len(lines) == 0 {
		return "_No measurements recorded._"
	}
	return strings.Join(lines, "\n")
}
