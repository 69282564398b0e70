package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	trackerout "fittrack/internal/modules/tracker/adapter/out"
	"fittrack/internal/modules/tracker/domain"
)

func TestVaultJournalProjectWritesNote(t *testing.T) {
	t.Parallel()
	vault := t.TempDir()
	journal := trackerout.NewVaultJournal(vault)
	e := domain.Entry{ID: "id-1", Date: "2026-01-05", Weight: domain.Float(180.24), Steps: domain.Int(12500), Water: domain.Int(1)}
	if err := journal.Project(context.Background(), e); err != nil {
		t.Fatalf("project: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(vault, "journal", "2026", "01", "2026-01-05.md"))
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note := string(b)
	for _, want := range []string{"schema_version: 1", "steps: 12500", "water: 1", "# January 5, 2026", "- Weight: 180.2 lbs", "- Steps: 12,500", "- Water: 1 cup\n"} {
		if !strings.Contains(note, want) {
			t.Fatalf("note missing %q:\n%s", want, note)
		}
	}
}

func TestVaultJournalKeepsUserText(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	journal := trackerout.NewVaultJournal(vault)
	path := filepath.Join(vault, "journal", "2026", "01", "2026-01-05.md")

	if err := journal.Project(ctx, domain.Entry{ID: "id-1", Date: "2026-01-05", Steps: domain.Int(100)}); err != nil {
		t.Fatalf("project: %v", err)
	}
	b, _ := os.ReadFile(path)
	edited := strings.Replace(string(b), "# January 5, 2026\n", "# January 5, 2026\n\nFelt great after the run.\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit note: %v", err)
	}

	if err := journal.Project(ctx, domain.Entry{ID: "id-1", Date: "2026-01-05", Steps: domain.Int(200)}); err != nil {
		t.Fatalf("reproject: %v", err)
	}
	b, _ = os.ReadFile(path)
	note := string(b)
	if !strings.Contains(note, "Felt great after the run.") || !strings.Contains(note, "- Steps: 200") || strings.Contains(note, "- Steps: 100") {
		t.Fatalf("unexpected note after reprojection:\n%s", note)
	}

	if err := journal.Remove(ctx, domain.Entry{ID: "id-1", Date: "2026-01-05"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("note with user text must survive removal: %v", err)
	}
	if strings.Contains(string(b), "- Steps") || !strings.Contains(string(b), "Felt great") {
		t.Fatalf("unexpected note after removal:\n%s", string(b))
	}
}

func TestVaultJournalRemoveAndResetDeleteGeneratedNotes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	journal := trackerout.NewVaultJournal(vault)

	if err := journal.Reset(ctx); err != nil {
		t.Fatalf("reset on empty vault: %v", err)
	}
	for _, date := range []string{"2026-01-05", "2026-02-01"} {
		if err := journal.Project(ctx, domain.Entry{ID: date, Date: date, Water: domain.Int(2)}); err != nil {
			t.Fatalf("project: %v", err)
		}
	}
	if err := journal.Remove(ctx, domain.Entry{Date: "2026-01-05"}); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(vault, "journal", "2026", "01", "2026-01-05.md")); !os.IsNotExist(err) {
		t.Fatalf("generated-only note should be deleted, stat err=%v", err)
	}
	if err := journal.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := os.Stat(filepath.Join(vault, "journal", "2026", "02", "2026-02-01.md")); !os.IsNotExist(err) {
		t.Fatalf("reset should clear generated notes, stat err=%v", err)
	}
}

func TestVaultJournalResetLeavesForeignAndBrokenNotes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	vault := t.TempDir()
	journal := trackerout.NewVaultJournal(vault)
	root := filepath.Join(vault, "journal")

	if err := journal.Project(ctx, domain.Entry{ID: "id-1", Date: "2026-02-01", Steps: domain.Int(100)}); err != nil {
		t.Fatalf("project: %v", err)
	}
	foreign := map[string]string{
		filepath.Join(root, "README.md"):                   "my own notes\n",
		filepath.Join(root, "2026", "2026-02-03.md"):       "misplaced but mine\n",
		filepath.Join(root, "2026", "01", "2026-01-09.md"): "---\nfoo: [\n---\n\nbroken frontmatter\n",
	}
	for path, content := range foreign {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}

	if err := journal.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	for path, content := range foreign {
		b, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("%s should survive reset: %v", path, err)
		}
		if string(b) != content {
			t.Fatalf("%s was rewritten:\n%s", path, string(b))
		}
	}
	if _, err := os.Stat(filepath.Join(root, "2026", "02", "2026-02-01.md")); !os.IsNotExist(err) {
		t.Fatalf("generated note should be cleared, stat err=%v", err)
	}
}
