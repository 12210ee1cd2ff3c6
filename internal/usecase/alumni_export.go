package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"alumni-network-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the column order of the alumni spreadsheet
var exportColumns = []struct {
	header string
	value  func(u domain.User) interface{}
}{
	{"ID", func(u domain.User) interface{} { return u.ID }},
	{"FULL NAME", func(u domain.User) interface{} { return deref(u.FullName) }},
	{"EMAIL", func(u domain.User) interface{} { return u.Email }},
	{"GRADUATION YEAR", func(u domain.User) interface{} {
		if u.GraduationYear == nil {
			return ""
		}
		return *u.GraduationYear
	}},
	{"MAJORS", func(u domain.User) interface{} { return strings.Join(u.Majors, "; ") }},
	{"LOCATION", func(u domain.User) interface{} { return deref(u.Location) }},
	{"CURRENT COMPANY", func(u domain.User) interface{} { return deref(u.CurrentCompany) }},
	{"CURRENT ROLE", func(u domain.User) interface{} { return deref(u.CurrentRole) }},
	{"LINKEDIN", func(u domain.User) interface{} { return deref(u.LinkedInURL) }},
	{"COFFEE CHATS", func(u domain.User) interface{} { return yesNo(u.OpenToCoffeeChats) }},
	{"MENTORSHIP", func(u domain.User) interface{} { return yesNo(u.OpenToMentorship) }},
	{"REFERRALS", func(u domain.User) interface{} { return yesNo(u.AvailableForReferrals) }},
	{"PROFILE VISIBLE", func(u domain.User) interface{} { return yesNo(u.ProfileVisible) }},
	{"JOINED", func(u domain.User) interface{} { return u.CreatedAt.UTC().Format("2006-01-02") }},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func renderAlumniExport(users []domain.User, format domain.ExportFormat, at time.Time) (*domain.ExportFile, error) {
	stamp := at.Format("20060102_150405")
	switch format {
	case domain.ExportCSV:
		data, err := exportAlumniCSV(users)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("alumni_%s.csv", stamp),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case domain.ExportXLSX, "":
		data, err := exportAlumniExcel(users)
		if err != nil {
			return nil, err
		}
		return &domain.ExportFile{
			Filename:    fmt.Sprintf("alumni_%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func exportAlumniExcel(users []domain.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Alumni"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, user := range users {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, col.value(user))
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportAlumniCSV(users []domain.User) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.header
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, user := range users {
		record := make([]string, len(exportColumns))
		for i, col := range exportColumns {
			record[i] = cellString(col.value(user))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func cellString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}
