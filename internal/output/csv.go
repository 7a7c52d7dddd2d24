package output

import (
	"encoding/csv"
	"io"
	"os"

	"topcv-crawler/internal/crawler"
)

// utf8BOM makes spreadsheet apps pick the right encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes a header row followed by one row per record, absent
// values are empty cells.
func WriteCSV(w io.Writer, records []crawler.JobRecord) error {
	_, err := w.Write(utf8BOM)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	err = writer.Write(crawler.Columns)
	if err != nil {
		return err
	}
	for _, record := range records {
		err = writer.Write(cells(record))
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeCSVFile(path string, records []crawler.JobRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WriteCSV(file, records)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
