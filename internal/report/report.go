// Package report turns coupon records into their display and export forms.
// It is a pure transformation layer; the only I/O is serialization.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"couponfinder/internal/models"
)

// Columns is the fixed column order shared by every output form.
var Columns = []string{"Store Address", "Coupon Description", "Coupon Code", "Price"}

// MIMEType is the content type served for CSV downloads.
const MIMEType = "text/csv"

// Rows flattens coupons into table rows, preserving input order.
func Rows(coupons []models.Coupon) [][]string {
	rows := make([][]string, 0, len(coupons))
	for _, c := range coupons {
		rows = append(rows, []string{c.StoreAddress, c.Description, c.Code, c.Price})
	}
	return rows
}

// CSV serializes coupons with a header row.
func CSV(coupons []models.Coupon) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(Rows(coupons)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the export filename for the given moment, for example
// dominos_coupons_20240131_154502.csv.
func Filename(t time.Time) string {
	return fmt.Sprintf("dominos_coupons_%s.csv", t.Format("20060102_150405"))
}

// Render writes a human-readable table of the coupons to w.
func Render(w io.Writer, coupons []models.Coupon) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)

	header := make(table.Row, 0, len(Columns))
	for _, col := range Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, c := range coupons {
		tw.AppendRow(table.Row{c.StoreAddress, c.Description, c.Code, c.Price})
	}
	tw.Render()
}
