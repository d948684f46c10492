package importer

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/geosiss/borehole/domain"
	"github.com/geosiss/borehole/geoerr"
)

// defaultNullValue is the LAS convention for missing readings when the well
// section does not declare its own NULL.
const defaultNullValue = -999.25

// lasCurve describes one ~C entry: the curve mnemonic plus its unit and
// description, which become the property's Unit and Long fields.
type lasCurve struct {
	mnemonic    string
	unit        string
	description string
}

// LAS reads a LAS 2.0 well-log file into a SamplingDomain. The first curve
// of the ~Curve section is the depth axis; every other curve becomes a
// numeric property carrying the curve's unit and description. Readings
// equal to the declared NULL value become NaN. Wrapped data sections
// (WRAP.YES) are handled transparently.
//
// The domain is named after the WELL entry of the ~Well section, falling
// back to "LAS well".
func LAS(r io.Reader) (*domain.SamplingDomain, error) {
	const op = "LAS"

	var (
		curves   []lasCurve
		tokens   []string
		wellName = "LAS well"
		nullVal  = defaultNullValue
		section  byte
		sawData  bool
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "~") {
			if len(line) < 2 {
				return nil, geoerr.NewValidationError(op,
					fmt.Errorf("line %d: empty section marker", lineNo))
			}
			section = line[1] &^ 0x20 // upper-case the section letter
			if section == 'A' {
				sawData = true
			}
			continue
		}

		switch section {
		case 'W':
			entry, err := parseHeaderLine(op, line, lineNo)
			if err != nil {
				return nil, err
			}
			switch strings.ToUpper(entry.mnemonic) {
			case "WELL":
				if entry.value != "" {
					wellName = entry.value
				}
			case "NULL":
				v, err := strconv.ParseFloat(entry.value, 64)
				if err != nil {
					return nil, geoerr.NewValidationError(op,
						fmt.Errorf("line %d: NULL value %q is not a number", lineNo, entry.value))
				}
				nullVal = v
			}
		case 'C':
			entry, err := parseHeaderLine(op, line, lineNo)
			if err != nil {
				return nil, err
			}
			curves = append(curves, lasCurve{
				mnemonic:    entry.mnemonic,
				unit:        entry.unit,
				description: entry.description,
			})
		case 'A':
			tokens = append(tokens, strings.Fields(line)...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, geoerr.NewValidationError(op, fmt.Errorf("read las: %w", err))
	}

	if len(curves) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("las file has no ~Curve section"))
	}
	if !sawData || len(tokens) == 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("las file has no ~ASCII data section"))
	}
	if len(tokens)%len(curves) != 0 {
		return nil, geoerr.NewValidationError(op,
			fmt.Errorf("data section has %d readings, not a multiple of %d curves",
				len(tokens), len(curves))).
			WithContext(map[string]any{"readings": len(tokens), "curves": len(curves)})
	}

	nrows := len(tokens) / len(curves)
	columns := make([][]float64, len(curves))
	for c := range columns {
		columns[c] = make([]float64, nrows)
	}
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, geoerr.NewValidationError(op,
				fmt.Errorf("data row %d: reading %q is not a number", i/len(curves)+1, tok)).
				WithContext(map[string]any{"row": i/len(curves) + 1, "curve": curves[i%len(curves)].mnemonic})
		}
		if v == nullVal {
			v = math.NaN()
		}
		columns[i%len(curves)][i/len(curves)] = v
	}

	dom, err := domain.NewSamplingDomain(wellName, columns[0])
	if err != nil {
		return nil, err
	}
	for c := 1; c < len(curves); c++ {
		p := domain.NewProperty(curves[c].mnemonic, columns[c])
		p.Unit = curves[c].unit
		p.Long = curves[c].description
		if err := dom.AddProperty(p); err != nil {
			return nil, err
		}
	}
	return dom, nil
}

// lasHeaderEntry is one parsed header line: MNEM.UNIT  VALUE : DESCRIPTION.
type lasHeaderEntry struct {
	mnemonic    string
	unit        string
	value       string
	description string
}

func parseHeaderLine(op, line string, lineNo int) (lasHeaderEntry, error) {
	dot := strings.Index(line, ".")
	if dot < 0 {
		return lasHeaderEntry{}, geoerr.NewValidationError(op,
			fmt.Errorf("line %d: header line %q has no mnemonic delimiter", lineNo, line))
	}

	var entry lasHeaderEntry
	entry.mnemonic = strings.TrimSpace(line[:dot])

	rest := line[dot+1:]
	if space := strings.IndexAny(rest, " \t"); space >= 0 {
		entry.unit = rest[:space]
		rest = rest[space+1:]
	} else {
		entry.unit = rest
		rest = ""
	}

	// The description follows the last colon; the value sits between the
	// unit and that colon. Well names may themselves contain colons, hence
	// last rather than first.
	if colon := strings.LastIndex(rest, ":"); colon >= 0 {
		entry.description = strings.TrimSpace(rest[colon+1:])
		rest = rest[:colon]
	}
	entry.value = strings.TrimSpace(rest)
	return entry, nil
}
