package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/quantsim/internal/quantity"
)

// CSV writes the result with one named column per quantity, sorted, so
// the output is stable across runs.
func CSV(w io.Writer, result quantity.Frame) error {
	cw := csv.NewWriter(w)
	cols := result.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for i := 0; i < result.Duration(); i++ {
		for j, c := range cols {
			row[j] = strconv.FormatFloat(result[c][i], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Document is the JSON export shape.
type Document struct {
	Name    string               `json:"name"`
	Rows    int                  `json:"rows"`
	Columns []string             `json:"columns"`
	Report  string               `json:"report,omitempty"`
	Series  map[string][]float64 `json:"series"`
}

// JSON writes the result with its run context as an indented document.
func JSON(w io.Writer, name, report string, result quantity.Frame) error {
	doc := Document{
		Name:    name,
		Rows:    result.Duration(),
		Columns: result.Columns(),
		Report:  report,
		Series:  result,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
