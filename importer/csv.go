package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// CSVIntervals reads an interval table into an IntervalDomain. The header
// must carry from_depth and to_depth columns; every other column becomes a
// property of the returned domain.
func CSVIntervals(r io.Reader, name string) (*domain.IntervalDomain, error) {
	const op = "CSVIntervals"

	header, rows, err := readTable(op, r)
	if err != nil {
		return nil, err
	}

	fromCol, err := findColumn(op, header, "from_depth")
	if err != nil {
		return nil, err
	}
	toCol, err := findColumn(op, header, "to_depth")
	if err != nil {
		return nil, err
	}

	from, err := depthColumn(op, rows, fromCol, header[fromCol])
	if err != nil {
		return nil, err
	}
	to, err := depthColumn(op, rows, toCol, header[toCol])
	if err != nil {
		return nil, err
	}

	dom, err := domain.NewIntervalDomain(name, from, to)
	if err != nil {
		return nil, err
	}
	if err := addColumns(dom, header, rows, fromCol, toCol); err != nil {
		return nil, err
	}
	return dom, nil
}

// CSVSamples reads a point-sample table into a SamplingDomain. The header
// must carry a depth column; every other column becomes a property of the
// returned domain.
func CSVSamples(r io.Reader, name string) (*domain.SamplingDomain, error) {
	const op = "CSVSamples"

	header, rows, err := readTable(op, r)
	if err != nil {
		return nil, err
	}

	depthCol, err := findColumn(op, header, "depth")
	if err != nil {
		return nil, err
	}
	depths, err := depthColumn(op, rows, depthCol, header[depthCol])
	if err != nil {
		return nil, err
	}

	dom, err := domain.NewSamplingDomain(name, depths)
	if err != nil {
		return nil, err
	}
	if err := addColumns(dom, header, rows, depthCol); err != nil {
		return nil, err
	}
	return dom, nil
}

// propertyDomain is the slice of the domain model the loaders target.
type propertyDomain interface {
	AddProperty(p *domain.Property) error
}

func readTable(op string, r io.Reader) (header []string, rows [][]string, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, geoerr.NewValidationError(op,
			fmt.Errorf("malformed csv: %w", err))
	}
	if len(records) < 2 {
		return nil, nil, geoerr.NewValidationError(op,
			fmt.Errorf("csv needs a header and at least one data row, got %d lines", len(records)))
	}

	header = records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, records[1:], nil
}

func findColumn(op string, header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i, nil
		}
	}
	return 0, geoerr.NewValidationError(op,
		fmt.Errorf("csv header has no %q column", name)).
		WithContext(map[string]any{"header": strings.Join(header, ",")})
}

// depthColumn parses a column that must be fully numeric, such as a depth
// axis.
func depthColumn(op string, rows [][]string, col int, name string) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("row %d: column %q value %q is not a number", i+2, name, row[col])).
				WithContext(map[string]any{"row": i + 2, "column": name})
		}
		out[i] = v
	}
	return out, nil
}

// addColumns turns every non-axis column into a property: numeric when all
// of its non-empty cells parse as floats (empty cells become NaN),
// categorical otherwise.
func addColumns(dom propertyDomain, header []string, rows [][]string, axisCols ...int) error {
	axis := make(map[int]bool, len(axisCols))
	for _, c := range axisCols {
		axis[c] = true
	}

	for col, name := range header {
		if axis[col] {
			continue
		}

		values := make([]float64, len(rows))
		numeric := true
		for i, row := range rows {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
				break
			}
			values[i] = v
		}

		var p *domain.Property
		if numeric {
			p = domain.NewProperty(name, values)
		} else {
			categories := make([]string, len(rows))
			for i, row := range rows {
				categories[i] = strings.TrimSpace(row[col])
			}
			p = domain.NewCategoricalProperty(name, categories)
		}
		if err := dom.AddProperty(p); err != nil {
			return err
		}
	}
	return nil
}
