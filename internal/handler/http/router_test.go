package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timekeeping-go/internal/config"
	"github.com/cmlabs-hris/timekeeping-go/internal/domain/employee"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timekeeping-go/internal/pkg/storage"
	attendanceService "github.com/cmlabs-hris/timekeeping-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/timekeeping-go/internal/service/employee"
	holidayService "github.com/cmlabs-hris/timekeeping-go/internal/service/holiday"
	identityService "github.com/cmlabs-hris/timekeeping-go/internal/service/identity"
	leaveService "github.com/cmlabs-hris/timekeeping-go/internal/service/leave"
	reportService "github.com/cmlabs-hris/timekeeping-go/internal/service/report"
	timeBankService "github.com/cmlabs-hris/timekeeping-go/internal/service/timebank"
	"github.com/cmlabs-hris/timekeeping-go/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	server *httptest.Server
	jwt    jwt.Service
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	sess, err := session.Open(ctx, nil, 1)
	require.NoError(t, err)
	_, err = sess.Employees.Create(ctx, employee.Employee{
		ID: "emp-ana", FullName: "Ana Pérez", BranchID: "centro", TaxID: "27-30111222-4",
	})
	require.NoError(t, err)

	archive, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)

	batchMu := &sync.Mutex{}
	handlers := Handlers{
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(
			sess.Attendance, sess.Employees, sess.Aliases, archive, sess, batchMu,
			config.ImportConfig{DefaultBranch: "unassigned"}, 5*time.Minute,
		)),
		Identity: NewIdentityHandler(identityService.NewIdentityService(sess.Aliases, sess.Employees, sess.Attendance, sess, batchMu)),
		Holiday:  NewHolidayHandler(holidayService.NewHolidayService(sess.Holidays)),
		Leave:    NewLeaveHandler(leaveService.NewLeaveService(sess.Licenses, sess.Permits, sess.Employees)),
		TimeBank: NewTimeBankHandler(timeBankService.NewTimeBankService(sess.TimeBank, sess.Employees)),
		Report: NewReportHandler(reportService.NewReportService(
			sess.Employees, sess.Attendance, sess.Holidays, sess.Licenses, sess.Permits, sess.Sales, 45,
		)),
		Employee: NewEmployeeHandler(employeeService.NewEmployeeService(sess.Employees)),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, []string{"*"}, jwtSvc, handlers))
	t.Cleanup(srv.Close)
	return &testServer{server: srv, jwt: jwtSvc}
}

func (s *testServer) token(t *testing.T, admin bool) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("ops-1", admin)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token, contentType string, body io.Reader) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (s *testServer) doJSON(t *testing.T, method, path, token string, payload interface{}) (*http.Response, envelope) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	resp := s.do(t, method, path, token, "application/json", body)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func (s *testServer) upload(t *testing.T, token, filename, content, branch string) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if branch != "" {
		require.NoError(t, mw.WriteField("branch", branch))
	}
	require.NoError(t, mw.Close())

	resp := s.do(t, http.MethodPost, "/api/v1/attendance/import", token, mw.FormDataContentType(), &buf)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

const clockExport = "CUIL:;27-30111222-4\n" +
	"Nombre:;Ana Pérez\n" +
	"04/03/2024;09:00;13:00;14:00;16:00\n" +
	"05/03/2024;08:00;12:00\n"

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/v1/employees", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/employees", "not-a-token", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/v1/employees", s.token(t, false), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ImportThenReport(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, false)

	resp, env := s.upload(t, token, "reloj.csv", clockExport, "centro")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result struct {
		Branch     string         `json:"branch"`
		Inserted   int            `json:"inserted"`
		Resolution map[string]int `json:"resolution"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "centro", result.Branch)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, result.Resolution["tax_id"])

	resp, env = s.doJSON(t, http.MethodGet, "/api/v1/reports/hours?start_date=2024-03-04&end_date=2024-03-10", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summaries []struct {
		EmployeeID    string  `json:"employee_id"`
		TotalHours    float64 `json:"total_hours"`
		ExpectedHours float64 `json:"expected_hours"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "emp-ana", summaries[0].EmployeeID)
	assert.Equal(t, 10.0, summaries[0].TotalHours)
	assert.Equal(t, 45.0, summaries[0].ExpectedHours)

	exportResp := s.do(t, http.MethodGet, "/api/v1/reports/export?start_date=2024-03-04&end_date=2024-03-10&format=csv", token, "", nil)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Contains(t, exportResp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, exportResp.Header.Get("Content-Disposition"), "hours_2024-03-04_2024-03-10.csv")
	body, err := io.ReadAll(exportResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Ana Pérez,centro,10.00,45.00,0.00")
}

func TestRouter_ImportRejectsUnknownFormat(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.upload(t, s.token(t, false), "reloj.pdf", "%PDF", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestRouter_ClearRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	operator := s.token(t, false)
	admin := s.token(t, true)

	resp, _ := s.upload(t, operator, "reloj.csv", clockExport, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.doJSON(t, http.MethodPost, "/api/v1/attendance/clear/request", operator, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := s.doJSON(t, http.MethodPost, "/api/v1/attendance/clear/request", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var confirmation struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &confirmation))
	require.NotEmpty(t, confirmation.Token)

	resp, _ = s.doJSON(t, http.MethodPost, "/api/v1/attendance/clear", admin, map[string]string{"token": "wrong"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = s.doJSON(t, http.MethodPost, "/api/v1/attendance/clear", admin, map[string]string{"token": confirmation.Token})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cleared struct {
		Deleted int `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cleared))
	assert.Equal(t, 2, cleared.Deleted)
}

func TestRouter_ErrorMapping(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, false)

	tests := []struct {
		name    string
		method  string
		path    string
		payload interface{}
		status  int
		code    string
	}{
		{"validation", http.MethodPost, "/api/v1/holidays", map[string]string{"date": "2024/05/01", "label": "Labour day"}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"not found", http.MethodGet, "/api/v1/employees/emp-nobody", nil, http.StatusNotFound, "NOT_FOUND"},
		{"bad range", http.MethodGet, "/api/v1/reports/hours?start_date=2024-03-10&end_date=2024-03-01", nil, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing license", http.MethodPost, "/api/v1/licenses/lic-nobody/approve", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := s.doJSON(t, tt.method, tt.path, token, tt.payload)
			assert.Equal(t, tt.status, resp.StatusCode)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestRouter_HolidayLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, false)

	resp, env := s.doJSON(t, http.MethodPost, "/api/v1/holidays", token, map[string]string{"date": "2024-05-01", "label": "Labour day"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	resp, _ = s.doJSON(t, http.MethodPost, "/api/v1/holidays", token, map[string]string{"date": "2024-05-01", "label": "Again"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = s.doJSON(t, http.MethodGet, "/api/v1/holidays?year=2024", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []struct {
		Label string `json:"label"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)

	resp, _ = s.doJSON(t, http.MethodDelete, "/api/v1/holidays/"+created.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
