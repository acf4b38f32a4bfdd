package excel

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

// readXLSX 用 excelize 读取现代格式
func readXLSX(path, sheet string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SheetReadError{Path: path, Sheet: sheet, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &SheetReadError{Path: path, Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &SheetReadError{Path: path, Sheet: sheet, Err: errors.New("sheet is empty")}
	}

	return tableFromRows(rows), nil
}
