package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mcoot/tilescore/internal/model"
)

// Sheet names in the standings workbook
const (
	SheetStandings = "Standings"
	SheetGroups    = "Groups"
	SheetRounds    = "Rounds"
)

var (
	standingsHeader = []any{"Rank", "Player", "Score", "Top K"}
	groupsHeader    = []any{"Rank", "Group", "Members", "Score", "Winning"}
	roundsHeader    = []any{"Round", "Time", "Seat", "Player", "Raw", "Base", "Bonus", "Delta", "Place"}
)

// Workbook renders standings, groups and round history into an XLSX file.
// The Groups sheet is only present when grouping is enabled.
func Workbook(board model.PlayerBoard, groups model.GroupBoard, rounds []model.RoundView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetStandings); err != nil {
		return nil, err
	}
	if err := writeStandings(f, board); err != nil {
		return nil, fmt.Errorf("writing standings: %w", err)
	}

	if groups.Enabled {
		if _, err := f.NewSheet(SheetGroups); err != nil {
			return nil, err
		}
		if err := writeGroups(f, groups); err != nil {
			return nil, fmt.Errorf("writing groups: %w", err)
		}
	}

	if _, err := f.NewSheet(SheetRounds); err != nil {
		return nil, err
	}
	if err := writeRounds(f, rounds); err != nil {
		return nil, fmt.Errorf("writing rounds: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStandings(f *excelize.File, board model.PlayerBoard) error {
	if err := setRow(f, SheetStandings, 1, standingsHeader); err != nil {
		return err
	}
	for i, e := range board.Entries {
		row := []any{e.Rank, e.Name, e.Score, yesNo(e.InTopK)}
		if err := setRow(f, SheetStandings, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeGroups(f *excelize.File, board model.GroupBoard) error {
	if err := setRow(f, SheetGroups, 1, groupsHeader); err != nil {
		return err
	}
	for i, e := range board.Entries {
		members := ""
		for j, m := range e.Members {
			if j > 0 {
				members += ", "
			}
			members += m.Name
		}
		row := []any{e.Rank, e.Name, members, e.Score, yesNo(e.Winning)}
		if err := setRow(f, SheetGroups, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRounds(f *excelize.File, rounds []model.RoundView) error {
	if err := setRow(f, SheetRounds, 1, roundsHeader); err != nil {
		return err
	}
	line := 2
	for _, r := range rounds {
		for _, seat := range r.Seats {
			b := seat.Breakdown
			row := []any{
				r.Number,
				r.Timestamp.Format("2006-01-02 15:04"),
				seat.Seat.String(),
				seat.Name,
				b.Raw,
				b.Base,
				b.Bonus,
				b.Delta,
				b.Rank + 1,
			}
			if err := setRow(f, SheetRounds, line, row); err != nil {
				return err
			}
			line++
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
