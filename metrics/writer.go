package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"swarm/draft"
)

type DraftRecord struct {
	ID      int
	RosterA draft.Roster
	RosterB draft.Roster
	BanOfA  draft.MonsterID
	BanOfB  draft.MonsterID
	Outcome float64 // Oracle score of the post-ban rosters, from A's side
	DraftMetric
}

type MoveRecord struct {
	Draft int // DraftRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> to hold one simulation run.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: baseDir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteDraftRecords(records []DraftRecord) error {
	header := []string{"id", "first", "roster_a", "roster_b", "ban_of_a", "ban_of_b", "outcome", "start_time", "end_time", "duration", "moves", "fallbacks"}
	return w.write("draft_records.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			strconv.Itoa(r.ID),
			r.First.String(),
			joinIDs(r.RosterA),
			joinIDs(r.RosterB),
			r.BanOfA.String(),
			r.BanOfB.String(),
			strconv.FormatFloat(r.Outcome, 'f', 4, 64),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
			strconv.Itoa(r.TotalMoves),
			strconv.Itoa(r.Fallbacks),
		}
	})
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"draft", "step", "side", "picks", "fallback", "mode", "candidates", "duration", "evaluations", "steps", "forced_spans"}
	return w.write("move_records.csv", header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			strconv.Itoa(r.Draft),
			strconv.Itoa(r.Step),
			r.Side.String(),
			joinIDs(r.Picks),
			strconv.FormatBool(r.Fallback),
			r.Mode,
			strconv.Itoa(r.Candidates),
			r.Duration.String(),
			strconv.Itoa(r.Evaluations),
			strconv.Itoa(r.Steps),
			strconv.Itoa(r.ForcedSpans),
		}
	})
}

func (w *Writer) write(name string, header []string, n int, row func(i int) []string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func joinIDs(ids []draft.MonsterID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, " ")
}
