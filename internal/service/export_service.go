package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/iqtest-api/internal/domain/entity"
)

// ExportService renders computed leaderboards into downloadable files.
type ExportService struct{}

// NewExportService creates the export service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// leaderboardHeaders is the shared column layout for both export formats.
var leaderboardHeaders = []string{
	"Posição", "Usuário", "Pontuação Final", "Categoria", "Badges", "Testes",
}

// BuildLeaderboardXLSX renders the leaderboard as an Excel workbook using a
// stream writer, so large boards do not hold the whole sheet in memory.
// The caller owns closing the returned file.
func (s *ExportService) BuildLeaderboardXLSX(timeframe entity.Timeframe, entries []LeaderboardEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := fmt.Sprintf("Ranking %s", timeframe)
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating stream writer: %w", err)
	}

	headers := make([]interface{}, len(leaderboardHeaders))
	for i, h := range leaderboardHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header row: %w", err)
	}

	for i, e := range entries {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{
			e.Rank,
			fmt.Sprintf("user-%d", e.UserID),
			e.FinalScore,
			SanitizeForExcel(e.Category),
			SanitizeForExcel(strings.Join(e.Badges, ", ")),
			e.ResultCount,
		}
		if err := sw.SetRow(cell, row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flushing stream writer: %w", err)
	}

	return f, nil
}

// LeaderboardCSVRows returns the header plus one row per entry, already
// sanitized for spreadsheet consumption.
func (s *ExportService) LeaderboardCSVRows(entries []LeaderboardEntry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, leaderboardHeaders)
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Rank),
			fmt.Sprintf("user-%d", e.UserID),
			fmt.Sprintf("%.2f", e.FinalScore),
			SanitizeForExcel(e.Category),
			SanitizeForExcel(strings.Join(e.Badges, ", ")),
			fmt.Sprintf("%d", e.ResultCount),
		})
	}
	return rows
}

// SanitizeForExcel guards exported cells against formula injection in
// Excel/LibreOffice.
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
