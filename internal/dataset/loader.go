// Package dataset loads batches of call recordings from an .xlsx sheet so
// the demo endpoint can run the pipeline over real rows.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"speech-insights-go/internal/types"
)

// Load reads the first sheet and auto-detects columns by header heuristics.
// Rows without an http(s) audio URL are skipped quietly.
func Load(path string) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	audioIdx, callIDIdx, langIdx := -1, -1, -1
	for i, h := range rows[0] {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "audio") || strings.Contains(l, "record") || strings.Contains(l, "url"):
			if audioIdx == -1 {
				audioIdx = i
			}
		case strings.Contains(l, "id"):
			if callIDIdx == -1 {
				callIDIdx = i
			}
		case strings.Contains(l, "lang"):
			if langIdx == -1 {
				langIdx = i
			}
		}
	}
	if audioIdx == -1 {
		return nil, fmt.Errorf("no audio URL column detected")
	}

	cell := func(r []string, idx int) string {
		if idx >= 0 && idx < len(r) {
			return strings.TrimSpace(r[idx])
		}
		return ""
	}

	var out []types.CallRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		rec := types.CallRecord{
			CallID:   cell(r, callIDIdx),
			AudioURL: cell(r, audioIdx),
			Language: cell(r, langIdx),
		}
		u := strings.ToLower(rec.AudioURL)
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
