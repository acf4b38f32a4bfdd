package excel

import (
	"errors"
	"fmt"

	"github.com/extrame/xls"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/model"
)

// readXLS 读取传统二进制格式（BIFF）
func readXLS(path, sheet string) (*model.Table, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, &SheetReadError{Path: path, Sheet: sheet, Err: err}
	}

	var ws *xls.WorkSheet
	for i := 0; i < wb.NumSheets(); i++ {
		if s := wb.GetSheet(i); s != nil && s.Name == sheet {
			ws = s
			break
		}
	}
	if ws == nil {
		return nil, &SheetReadError{Path: path, Sheet: sheet,
			Err: fmt.Errorf("sheet %q does not exist", sheet)}
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for r := 0; r <= int(ws.MaxRow); r++ {
		row := ws.Row(r)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		vals := make([]string, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			vals[c] = row.Col(c)
		}
		rows = append(rows, vals)
	}
	if len(rows) == 0 {
		return nil, &SheetReadError{Path: path, Sheet: sheet, Err: errors.New("sheet is empty")}
	}

	return tableFromRows(rows), nil
}
