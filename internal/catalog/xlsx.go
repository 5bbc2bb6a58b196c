package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXConfig maps spreadsheet columns to item fields.
type XLSXConfig struct {
	FilePath          string
	SheetName         string
	StartRow          int // 1-based; rows before it are headers
	IDColumn          string
	TypeColumn        string
	SubjectColumn     string
	TopicColumn       string
	DifficultyColumn  string
	TitleColumn       string
	PromptColumn      string
	ChoicesColumn     string // choices separated by ChoiceSeparator
	AnswerColumn      string // 0-based answer index
	ExplanationColumn string
	PassageColumn     string
	ChoiceSeparator   string
}

// DefaultXLSXConfig returns the column layout written by the authoring
// template: A=id B=type C=subject D=topic E=difficulty F=title G=prompt
// H=choices I=answer J=explanation K=passage.
func DefaultXLSXConfig(path string) XLSXConfig {
	return XLSXConfig{
		FilePath:          path,
		SheetName:         "Sheet1",
		StartRow:          2,
		IDColumn:          "A",
		TypeColumn:        "B",
		SubjectColumn:     "C",
		TopicColumn:       "D",
		DifficultyColumn:  "E",
		TitleColumn:       "F",
		PromptColumn:      "G",
		ChoicesColumn:     "H",
		AnswerColumn:      "I",
		ExplanationColumn: "J",
		PassageColumn:     "K",
		ChoiceSeparator:   "|",
	}
}

// ImportResult holds the parsed items and the rows that could not be used.
type ImportResult struct {
	TotalProcessed int
	Skipped        int
	Items          []Item
	Errors         []string
}

// ImportXLSX reads items from a spreadsheet. Bad rows are collected in
// ImportResult.Errors rather than aborting the import.
func ImportXLSX(cfg XLSXConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	res := &ImportResult{}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if isBlankRow(row) {
			res.Skipped++
			continue
		}
		res.TotalProcessed++

		it, err := parseRow(row, cfg)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		res.Items = append(res.Items, it)
	}
	return res, nil
}

func parseRow(row []string, cfg XLSXConfig) (Item, error) {
	cell := func(col string) string {
		idx, err := excelize.ColumnNameToNumber(col)
		if err != nil || idx-1 >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx-1])
	}

	it := Item{
		ID:          cell(cfg.IDColumn),
		Type:        ItemType(strings.ToLower(cell(cfg.TypeColumn))),
		Subject:     cell(cfg.SubjectColumn),
		Topic:       cell(cfg.TopicColumn),
		Title:       cell(cfg.TitleColumn),
		Prompt:      cell(cfg.PromptColumn),
		Explanation: cell(cfg.ExplanationColumn),
		Passage:     cell(cfg.PassageColumn),
	}
	if it.ID == "" {
		return Item{}, ErrMissingID
	}
	if it.Type == "" {
		it.Type = TypeQuiz
	}
	if it.Type == TypeLesson {
		it.Caption, it.Prompt = it.Prompt, ""
	}

	if d := cell(cfg.DifficultyColumn); d != "" {
		v, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return Item{}, fmt.Errorf("difficulty %q: %w", d, err)
		}
		it.Difficulty = &v
	}

	if c := cell(cfg.ChoicesColumn); c != "" {
		for _, choice := range strings.Split(c, cfg.ChoiceSeparator) {
			if choice = strings.TrimSpace(choice); choice != "" {
				it.Choices = append(it.Choices, choice)
			}
		}
	}

	if a := cell(cfg.AnswerColumn); a != "" {
		n, err := strconv.Atoi(a)
		if err != nil {
			return Item{}, fmt.Errorf("answer %q: %w", a, err)
		}
		if n < 0 || n >= len(it.Choices) {
			return Item{}, fmt.Errorf("answer %d out of range for %d choices", n, len(it.Choices))
		}
		it.AnswerIndex = &n
	}
	return it, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
