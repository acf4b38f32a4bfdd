package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mauz79/FCM-Excel-2-JSON/internal/config"
	"github.com/mauz79/FCM-Excel-2-JSON/internal/schema"
)

func writeFixture(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", schema.SheetName); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	header := make([]interface{}, len(schema.RequiredColumns))
	for i, c := range schema.RequiredColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(schema.SheetName, "A1", &header); err != nil {
		t.Fatalf("set header: %v", err)
	}

	vals := make([]interface{}, len(schema.RequiredColumns))
	for i, col := range schema.RequiredColumns {
		switch {
		case schema.FloatColumns[col]:
			vals[i] = "6,50"
		case schema.IntColumns[col]:
			vals[i] = 3
		default:
			vals[i] = "Rossi"
		}
	}
	if err := f.SetSheetRow(schema.SheetName, "A2", &vals); err != nil {
		t.Fatalf("set row: %v", err)
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
}

func newTestServer(t *testing.T, outDir string) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Data.OutputDir = outDir
	cfg.Data.HistoryDB = "" // 测试不落历史库
	return NewServer(cfg)
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestServer_ConvertJobLifecycle(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	writeFixture(t, filepath.Join(inDir, "export_2020_2021.xlsx"))

	s := newTestServer(t, outDir)

	w := doJSON(t, s, http.MethodPost, "/api/convert", map[string]interface{}{
		"input_dir":  inDir,
		"output_dir": outDir,
	})
	if w.Code != http.StatusAccepted {
		t.Fatalf("convert status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		w = doJSON(t, s, http.MethodGet, "/api/jobs/"+resp.JobID, nil)
		var st struct {
			Done bool `json:"done"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if st.Done {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not finish in time")
		}
		time.Sleep(20 * time.Millisecond)
	}

	w = doJSON(t, s, http.MethodGet, "/api/jobs/"+resp.JobID+"/events?after=0", nil)
	var events struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
		Done bool `json:"done"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &events); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if !events.Done || len(events.Events) == 0 {
		t.Fatalf("unexpected events payload: %s", w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/seasons?output_dir="+outDir, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seasons status = %d", w.Code)
	}
	var manifest struct {
		Seasons []struct {
			Key string `json:"key"`
		} `json:"seasons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if len(manifest.Seasons) != 1 || manifest.Seasons[0].Key != "2020_2021" {
		t.Fatalf("unexpected manifest: %s", w.Body.String())
	}
}

func TestServer_ConvertRequiresOutputDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.OutputDir = ""
	cfg.Data.HistoryDB = ""
	s := NewServer(cfg)

	w := doJSON(t, s, http.MethodPost, "/api/convert", map[string]interface{}{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestServer_UnknownJob(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	w := doJSON(t, s, http.MethodGet, "/api/jobs/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestServer_SeasonsEmptyBeforeFirstRun(t *testing.T) {
	outDir := t.TempDir()
	s := newTestServer(t, outDir)

	w := doJSON(t, s, http.MethodGet, "/api/seasons?output_dir="+outDir, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seasons status = %d", w.Code)
	}
	var manifest struct {
		SchemaVersion int           `json:"schema_version"`
		Seasons       []interface{} `json:"seasons"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &manifest); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if manifest.SchemaVersion != 1 || len(manifest.Seasons) != 0 {
		t.Fatalf("unexpected manifest: %s", w.Body.String())
	}
}
