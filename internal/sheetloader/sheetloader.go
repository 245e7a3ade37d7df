// Package sheetloader obtains the monthly deals workbook and hands its
// worksheet to the parsing core as an untyped grid. It knows about files,
// cloud exports and Russian sheet names; it knows nothing about columns.
package sheetloader

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/fueldesk/internal/logging"
	"fjacquet/fueldesk/internal/models"
	"fjacquet/fueldesk/internal/parsererror"

	"github.com/xuri/excelize/v2"
)

// defaultExportBase is the cloud spreadsheet export endpoint. The sheet
// id is appended to it to form the download URL.
const defaultExportBase = "https://docs.google.com/spreadsheets/d/"

// monthNames are the worksheet month names, uppercase as the workbook
// spells them.
var monthNames = [...]string{
	"ЯНВАРЬ", "ФЕВРАЛЬ", "МАРТ", "АПРЕЛЬ", "МАЙ", "ИЮНЬ",
	"ИЮЛЬ", "АВГУСТ", "СЕНТЯБРЬ", "ОКТЯБРЬ", "НОЯБРЬ", "ДЕКАБРЬ",
}

// MonthSheetName returns the worksheet name for the given date's month,
// for example "АВГУСТ 2025".
func MonthSheetName(date time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[date.Month()-1], date.Year())
}

// previousMonth returns the first day of the month before the given
// date's month.
func previousMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location()).AddDate(0, -1, 0)
}

// Loader opens deal workbooks from local files or a cloud export.
type Loader struct {
	client     *http.Client
	exportBase string
	localDir   string
	logger     logging.Logger
}

// New creates a Loader with a 30 second download timeout and the current
// directory as the local fallback location.
func New(logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Loader{
		client:     &http.Client{Timeout: 30 * time.Second},
		exportBase: defaultExportBase,
		localDir:   ".",
		logger:     logger,
	}
}

// WithHTTPClient replaces the download client. Used to set timeouts.
func (l *Loader) WithHTTPClient(client *http.Client) *Loader {
	if client != nil {
		l.client = client
	}
	return l
}

// WithExportBase replaces the cloud export endpoint.
func (l *Loader) WithExportBase(base string) *Loader {
	if base != "" {
		l.exportBase = base
	}
	return l
}

// WithLocalDir sets the directory searched for the <id>.xlsx fallback
// copy when the download fails.
func (l *Loader) WithLocalDir(dir string) *Loader {
	if dir != "" {
		l.localDir = dir
	}
	return l
}

// Load obtains the workbook named by source and returns the month sheet
// for date as a grid, together with the name of the sheet actually used.
// When the month's sheet is absent the previous month's sheet is used
// instead; when neither exists a SheetNotFoundError is returned.
//
// Source may be a local .xlsx path, a full export URL, or a bare cloud
// spreadsheet id.
func (l *Loader) Load(ctx context.Context, source string, date time.Time) (models.Grid, string, error) {
	file, err := l.openWorkbook(ctx, source)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	sheet := MonthSheetName(date)
	fallback := MonthSheetName(previousMonth(date))

	name, err := resolveSheet(file, sheet, fallback)
	if err != nil {
		return nil, "", err
	}
	if name != sheet {
		l.logger.Warn("Month sheet not found, using previous month",
			logging.Field{Key: logging.FieldSheet, Value: name})
	}

	rows, err := file.GetRows(name)
	if err != nil {
		return nil, "", &parsererror.LoadError{Source: source, Err: err}
	}

	l.logger.Info("Loaded worksheet",
		logging.Field{Key: logging.FieldSheet, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return models.GridFromStrings(rows), name, nil
}

func (l *Loader) openWorkbook(ctx context.Context, source string) (*excelize.File, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.download(ctx, source, source)
	case strings.HasSuffix(strings.ToLower(source), ".xlsx"):
		return l.openFile(source)
	default:
		// A bare spreadsheet id: download the export, falling back
		// to a local <id>.xlsx copy.
		file, err := l.download(ctx, l.exportBase+source+"/export?format=xlsx", source)
		if err == nil {
			return file, nil
		}
		local := filepath.Join(l.localDir, source+".xlsx")
		l.logger.WithError(err).Warn("Download failed, trying local copy",
			logging.Field{Key: logging.FieldFile, Value: local})
		file, localErr := l.openFile(local)
		if localErr != nil {
			return nil, err
		}
		return file, nil
	}
}

func (l *Loader) openFile(path string) (*excelize.File, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &parsererror.LoadError{Source: path, Err: err}
	}
	return file, nil
}

func (l *Loader) download(ctx context.Context, url, source string) (*excelize.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &parsererror.LoadError{Source: source, Err: err}
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &parsererror.LoadError{Source: source, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &parsererror.LoadError{
			Source: source,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	file, err := excelize.OpenReader(resp.Body)
	if err != nil {
		return nil, &parsererror.LoadError{Source: source, Err: err}
	}
	return file, nil
}

// resolveSheet returns the first of the two sheet names present in the
// workbook. Sheet name matching is exact; the workbook uses uppercase
// month names throughout.
func resolveSheet(file *excelize.File, sheet, fallback string) (string, error) {
	for _, name := range []string{sheet, fallback} {
		idx, err := file.GetSheetIndex(name)
		if err == nil && idx >= 0 {
			return name, nil
		}
	}
	return "", &parsererror.SheetNotFoundError{Sheet: sheet, Fallback: fallback}
}
