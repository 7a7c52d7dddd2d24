package output

import (
	"topcv-crawler/internal/crawler"

	"github.com/xuri/excelize/v2"
)

const sheetName = "jobs"

// NewWorkbook lays the records out on a single sheet with a frozen header.
func NewWorkbook(records []crawler.JobRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	err := f.SetSheetName("Sheet1", sheetName)
	if err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, len(crawler.Columns))
	for i, col := range crawler.Columns {
		header[i] = col
	}
	err = f.SetSheetRow(sheetName, "A1", &header)
	if err != nil {
		f.Close()
		return nil, err
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := cells(record)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		err = f.SetSheetRow(sheetName, cell, &row)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	err = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeXlsxFile(path string, records []crawler.JobRecord) error {
	f, err := NewWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}
