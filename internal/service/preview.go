package service

// The engine hides every parse failure, so a sheet with a shifted column
// manifests only as "no opportunities found". The raw preview is the
// debugging aid for that: the first rows of the snapshot exactly as
// fetched, trimmed to a displayable width.

const previewCellLimit = 40

// Preview returns up to maxRows rows of the grid with long cells truncated.
// The returned rows are copies; mutating them does not touch the snapshot.
func Preview(grid [][]string, maxRows int) [][]string {
	if maxRows <= 0 || len(grid) == 0 {
		return nil
	}
	if maxRows > len(grid) {
		maxRows = len(grid)
	}

	preview := make([][]string, maxRows)
	for i := 0; i < maxRows; i++ {
		row := make([]string, len(grid[i]))
		for j, cell := range grid[i] {
			row[j] = truncateCell(cell)
		}
		preview[i] = row
	}
	return preview
}

// truncateCell trims a cell to previewCellLimit runes without splitting a
// multi-byte rune.
func truncateCell(cell string) string {
	count := 0
	for idx := range cell {
		if count == previewCellLimit {
			return cell[:idx] + "…"
		}
		count++
	}
	return cell
}
