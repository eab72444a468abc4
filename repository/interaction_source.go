package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"melv-core/domain"
)

// Column names accepted in tabular batch files.
const (
	colEntity1         = "entity1"
	colEntity2         = "entity2"
	colMethod          = "method"
	colOverlap         = "overlap"
	colDifferentiation = "differentiation"
	colUncertainty     = "uncertainty"
	colBootstrapN      = "bootstrap_n"
	colRandomSeed      = "random_seed"
)

// LoadInteractionPairs reads a batch of named interactions. The format is
// chosen from the extension: .yaml/.yml, .xlsx (first sheet) or .csv.
func LoadInteractionPairs(path string) ([]domain.InteractionPair, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		return DecodeInteractionPairsYAML(f)
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %w", err)
		}
		return pairsFromRows(rows)
	default:
		return nil, fmt.Errorf("unsupported batch file type %q", ext)
	}
}

// DecodeInteractionPairsYAML decodes a YAML list of interaction pairs.
func DecodeInteractionPairsYAML(r io.Reader) ([]domain.InteractionPair, error) {
	var pairs []domain.InteractionPair
	if err := yaml.NewDecoder(r).Decode(&pairs); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("decode YAML batch: %w", err)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("batch file is empty")
	}
	return pairs, nil
}

func readXLSX(path string) ([]domain.InteractionPair, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return pairsFromRows(rows)
}

// pairsFromRows converts a header row plus data rows into interaction pairs.
func pairsFromRows(rows [][]string) ([]domain.InteractionPair, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("batch file must have a header row and at least one data row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colOverlap, colDifferentiation} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("batch file is missing the %q column", required)
		}
	}

	pairs := make([]domain.InteractionPair, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		if strings.Join(row, "") == "" {
			continue
		}

		pair := domain.InteractionPair{
			Entity1: cell(colEntity1),
			Entity2: cell(colEntity2),
			Method:  domain.Method(cell(colMethod)),
		}

		var err error
		if pair.Input.Overlap, err = parseFloat(cell(colOverlap)); err != nil {
			return nil, fmt.Errorf("row %d: overlap: %w", line, err)
		}
		if pair.Input.Differentiation, err = parseFloat(cell(colDifferentiation)); err != nil {
			return nil, fmt.Errorf("row %d: differentiation: %w", line, err)
		}
		if v := cell(colUncertainty); v != "" {
			if pair.Input.Uncertainty, err = parseFloat(v); err != nil {
				return nil, fmt.Errorf("row %d: uncertainty: %w", line, err)
			}
		}
		if v := cell(colBootstrapN); v != "" {
			bn, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: bootstrap_n: %w", line, err)
			}
			pair.Input.BootstrapN = &bn
		}
		if v := cell(colRandomSeed); v != "" {
			seed, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: random_seed: %w", line, err)
			}
			pair.Input.RandomSeed = &seed
		}

		pairs = append(pairs, pair)
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("batch file is empty")
	}
	return pairs, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("value is required")
	}
	return strconv.ParseFloat(s, 64)
}
