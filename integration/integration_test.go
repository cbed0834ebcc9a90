package integration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/marathon/internal/catalog"
	"github.com/javiermolinar/marathon/internal/db"
	"github.com/javiermolinar/marathon/internal/movie"
	"github.com/javiermolinar/marathon/internal/planner"
	"github.com/javiermolinar/marathon/internal/ui"
)

// twoMovies is A (90 min, 10:00 and 2pm) and B (1 hr, 12:00 and 16:00).
const twoMovies = `movies:
  - title: A
    duration: 90min
    showtimes: ["10:00", "2:00pm"]
  - title: B
    duration: 1hr
    showtimes: ["12:00", "16:00"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// openCatalog loads a catalog file into a fresh in-memory catalog.
func openCatalog(t *testing.T, path string, format movie.ShowtimeFormat) *catalog.Catalog {
	t.Helper()
	repo, err := db.NewMemory()
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	c := catalog.New(repo, format)
	t.Cleanup(func() { _ = c.Close() })

	if _, err := c.LoadFile(context.Background(), path); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

func plan(t *testing.T, c *catalog.Catalog, params planner.Params) *planner.Result {
	t.Helper()
	result, err := planner.New(c, zerolog.Nop()).Plan(context.Background(), params)
	if err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	return result
}

func TestPlan_ShortBreak(t *testing.T) {
	c := openCatalog(t, writeFile(t, "movies.yaml", twoMovies), movie.FormatFreeText)

	result := plan(t, c, planner.Params{Count: 2, BreakMinutes: 15})

	got := ui.PlainText(ui.RenderResult(result, 5))
	want := "Marathon Option 1 (Total Break Time: 30 min)\n" +
		"  A (1 hr 30 min): 10:00 - 11:30\n" +
		"  --- Break: 30 min ---\n" +
		"  B (1 hr): 12:00 - 13:00\n" +
		"\n" +
		"Marathon Option 2 (Total Break Time: 4 hr 30 min)\n" +
		"  A (1 hr 30 min): 10:00 - 11:30\n" +
		"  --- Break: 4 hr 30 min ---\n" +
		"  B (1 hr): 16:00 - 17:00\n"
	if got != want {
		t.Errorf("rendered:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlan_LongBreak(t *testing.T) {
	c := openCatalog(t, writeFile(t, "movies.yaml", twoMovies), movie.FormatFreeText)

	result := plan(t, c, planner.Params{Count: 2, BreakMinutes: 120})
	if result.Total() != 1 {
		t.Fatalf("expected 1 schedule, got %d", result.Total())
	}
	if result.Ranked[0].TotalBreak != 270 {
		t.Errorf("total break = %d, want 270", result.Ranked[0].TotalBreak)
	}
}

func TestPlan_MandatoryExcludesOthers(t *testing.T) {
	c := openCatalog(t, writeFile(t, "movies.yaml", twoMovies), movie.FormatFreeText)

	result := plan(t, c, planner.Params{Count: 1, Mandatory: []string{"b"}})
	if result.Total() != 2 {
		t.Fatalf("expected 2 schedules, got %d", result.Total())
	}
	for _, r := range result.Ranked {
		if r.Slots[0].Title != "B" {
			t.Errorf("schedule without B: %+v", r.Slots)
		}
	}
}

func TestPlan_MandatoryFromFileUnsatisfiable(t *testing.T) {
	content := `[[movies]]
title = "Early"
duration = "2hr"
showtimes = ["10:00"]
mandatory = true

[[movies]]
title = "Overlap"
duration = "1hr"
showtimes = ["11:00"]
mandatory = true

[[movies]]
title = "Late"
duration = "1hr"
showtimes = ["20:00"]
`
	c := openCatalog(t, writeFile(t, "movies.toml", content), movie.FormatFreeText)

	result := plan(t, c, planner.Params{Count: 2})
	lines := ui.RenderResult(result, 5)
	if len(lines) != 1 || lines[0].Text != ui.MsgNoMandatorySchedules {
		t.Errorf("rendered %+v, want the mandatory message", lines)
	}
}

func TestPlan_ListFormatSkipsInvalidTimes(t *testing.T) {
	content := `[[movies]]
title = "A"
duration = "90"
showtimes = ["10:00", "99:99", "14:00"]
`
	c := openCatalog(t, writeFile(t, "movies.toml", content), movie.FormatList)

	movies, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if got := len(movies[0].Showtimes); got != 3 {
		t.Errorf("stored %d showtimes, want all 3 as written", got)
	}

	result := plan(t, c, planner.Params{Count: 1})
	if result.Total() != 2 {
		t.Errorf("expected 2 schedules from the valid times, got %d", result.Total())
	}
}

func TestPlan_EmptyCatalog(t *testing.T) {
	repo, err := db.NewMemory()
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	c := catalog.New(repo, movie.FormatFreeText)
	t.Cleanup(func() { _ = c.Close() })

	_, err = planner.New(c, zerolog.Nop()).Plan(context.Background(), planner.Params{Count: 1})
	if !errors.Is(err, planner.ErrNoMovies) {
		t.Errorf("error = %v, want ErrNoMovies", err)
	}
}

func TestSweep(t *testing.T) {
	c := openCatalog(t, writeFile(t, "movies.yaml", twoMovies), movie.FormatFreeText)

	results, err := planner.New(c, zerolog.Nop()).Sweep(context.Background(), planner.Params{BreakMinutes: 15}, []int{1, 2})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if n := len(results[0].Ranked); n != 4 {
		t.Errorf("count 1: %d schedules, want one per showtime (4)", n)
	}
	if n := len(results[1].Ranked); n != 2 {
		t.Errorf("count 2: %d schedules, want 2", n)
	}
}

func TestCatalog_RoundTrip(t *testing.T) {
	ctx := context.Background()

	repo, err := db.NewMemory()
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	c := catalog.New(repo, movie.FormatFreeText)
	t.Cleanup(func() { _ = c.Close() })

	added, err := c.Add(ctx, catalog.Input{Title: "Alien", Duration: "117", Showtimes: "10:00 and 2:30pm"})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	on, err := c.ToggleMandatory(ctx, added.ID)
	if err != nil || !on {
		t.Fatalf("toggle mandatory = %v, %v", on, err)
	}

	movies, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	got := movies[0]
	if got.ID != added.ID || got.Title != "Alien" || got.DurationMinutes != 117 || !got.Mandatory {
		t.Errorf("stored movie = %+v", got)
	}
	if len(got.Showtimes) != 2 || got.Showtimes[0] != "10:00" || got.Showtimes[1] != "14:30" {
		t.Errorf("showtimes = %v", got.Showtimes)
	}
}
