package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamclock/attendance-api/internal/domain/attendance"
	"github.com/teamclock/attendance-api/internal/handler/http/response"
	"github.com/teamclock/attendance-api/internal/pkg/clock"
	"github.com/teamclock/attendance-api/internal/pkg/jwt"
	"github.com/teamclock/attendance-api/internal/pkg/sse"
	"github.com/teamclock/attendance-api/internal/repository/memory"
	attendanceService "github.com/teamclock/attendance-api/internal/service/attendance"
	authService "github.com/teamclock/attendance-api/internal/service/auth"
	dashboardService "github.com/teamclock/attendance-api/internal/service/dashboard"
	reportService "github.com/teamclock/attendance-api/internal/service/report"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testApp struct {
	router *chi.Mux
	clock  *clock.Fixed
	hub    *sse.Hub
}

// newTestApp wires the full router on the memory store. The clock reads
// Friday 2025-11-28 09:30 UTC.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	records := memory.NewAttendanceRepository(store)
	dash := memory.NewDashboardRepository(store)

	clk := clock.NewFixed(time.Date(2025, 11, 28, 9, 30, 0, 0, time.UTC))
	rules := attendance.DefaultRules()
	rules.Location = time.UTC

	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h")
	require.NoError(t, err)
	hub := sse.NewHub()

	handlers := Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(users, jwtService), nil, "http://localhost:5173"),
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(records, users, clk, rules, hub)),
		Dashboard:  NewDashboardHandler(dashboardService.NewDashboardService(dash, records, users, clk, time.UTC)),
		Report:     NewReportHandler(reportService.NewReportService(records, users, clk, time.UTC)),
		Stream:     NewStreamHandler(jwtService, hub),
	}

	router := NewRouter(RouterConfig{Env: "test", Version: "test", FrontendURL: "http://localhost:5173", LogLevel: slog.LevelError}, jwtService, handlers)
	return &testApp{router: router, clock: clk, hub: hub}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) response.Response {
	t.Helper()
	var envelope struct {
		response.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope), w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

func (a *testApp) register(t *testing.T, name, email, employeeID, department, role string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":       name,
		"email":      email,
		"password":   "password123",
		"employeeId": employeeID,
		"department": department,
		"role":       role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var token struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &token)
	require.NotEmpty(t, token.Token)
	return token.Token
}

func TestRouter_EmployeeDay(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "John Doe", "employee1@test.com", "EMP001", "Engineering", "")

	w := app.do(t, http.MethodGet, "/api/v1/attendance/today", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var today attendance.TodayResponse
	decodeData(t, w, &today)
	assert.False(t, today.CheckedIn)
	assert.Equal(t, attendance.NotCheckedInStatus, today.Status)

	w = app.do(t, http.MethodPost, "/api/v1/attendance/checkout", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/attendance/checkin", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var checkedIn attendance.AttendanceResponse
	decodeData(t, w, &checkedIn)
	assert.Equal(t, "present", checkedIn.Status)
	require.NotNil(t, checkedIn.CheckInTime)
	assert.Equal(t, "09:30", *checkedIn.CheckInTime)

	w = app.do(t, http.MethodPost, "/api/v1/attendance/checkin", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	app.clock.Set(time.Date(2025, 11, 28, 18, 0, 0, 0, time.UTC))
	w = app.do(t, http.MethodPost, "/api/v1/attendance/checkout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var checkedOut attendance.AttendanceResponse
	decodeData(t, w, &checkedOut)
	assert.InDelta(t, 8.5, checkedOut.TotalHours, 0.001)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/my-history?limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []attendance.AttendanceResponse
	decodeData(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-11-28", history[0].Date)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/my-history?limit=abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/my-summary?month=11&year=2025", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary attendance.SummaryResponse
	decodeData(t, w, &summary)
	assert.Equal(t, 1, summary.Present)
	assert.InDelta(t, 8.5, summary.TotalHours, 0.001)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/my-summary?month=13", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_AuthRequired(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/v1/attendance/today", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/today", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := app.register(t, "John Doe", "employee1@test.com", "EMP001", "Engineering", "")

	w = app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		EmployeeID string `json:"employeeId"`
	}
	decodeData(t, w, &me)
	assert.Equal(t, "EMP001", me.EmployeeID)

	w = app.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LoginAndDuplicates(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "John Doe", "employee1@test.com", "EMP001", "Engineering", "")

	w := app.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "employee1@test.com", "password": "password123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "employee1@test.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "Dup", "email": "employee1@test.com", "password": "password123", "employeeId": "EMP009", "department": "HR",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = app.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{"name": "Bad"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decodeData(t, w, nil)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "email")

	w = app.do(t, http.MethodGet, "/api/v1/auth/login/oauth/google", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ManagerViews(t *testing.T) {
	app := newTestApp(t)
	manager := app.register(t, "Manoj Manager", "manager@test.com", "MGR001", "CSE", "manager")
	john := app.register(t, "John Doe", "employee1@test.com", "EMP001", "Engineering", "")
	app.register(t, "Alice", "employee2@test.com", "EMP002", "HR", "")

	w := app.do(t, http.MethodPost, "/api/v1/attendance/checkin", john, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, path := range []string{"/api/v1/attendance/all", "/api/v1/attendance/today-status", "/api/v1/attendance/export", "/api/v1/attendance/stream/token"} {
		w = app.do(t, http.MethodGet, path, john, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}

	w = app.do(t, http.MethodGet, "/api/v1/attendance/today-status", manager, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var status struct {
		PresentCount int `json:"presentCount"`
		AbsentCount  int `json:"absentCount"`
	}
	decodeData(t, w, &status)
	assert.Equal(t, 1, status.PresentCount)
	assert.Equal(t, 1, status.AbsentCount)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/all?status=present", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []attendance.RowResponse
	decodeData(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMP001", rows[0].EmployeeID)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/all?status=sleeping", manager, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/summary", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var team struct {
		Weekly []json.RawMessage `json:"weekly"`
	}
	decodeData(t, w, &team)
	assert.Len(t, team.Weekly, 7)

	w = app.do(t, http.MethodGet, "/api/v1/attendance/export?from=2025-11-01&to=2025-11-30", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_2025-11-01_2025-11-30.csv")
	assert.Contains(t, w.Body.String(), "EMP001")

	w = app.do(t, http.MethodGet, "/api/v1/attendance/export?employee_id=EMP999", manager, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_LiveFeed(t *testing.T) {
	app := newTestApp(t)
	manager := app.register(t, "Manoj Manager", "manager@test.com", "MGR001", "CSE", "manager")
	john := app.register(t, "John Doe", "employee1@test.com", "EMP001", "Engineering", "")

	w := app.do(t, http.MethodGet, "/api/v1/attendance/stream?token="+manager, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "access tokens are not stream tokens")

	w = app.do(t, http.MethodGet, "/api/v1/attendance/stream/token", manager, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var streamToken StreamTokenResponse
	decodeData(t, w, &streamToken)
	assert.Equal(t, 300, streamToken.ExpiresIn)

	server := httptest.NewServer(app.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/attendance/stream?token="+streamToken.Token, nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() (string, string) {
		var event, data string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			line = strings.TrimRight(line, "\n")
			if line == "" {
				return event, data
			}
			if v, ok := strings.CutPrefix(line, "event: "); ok {
				event = v
			}
			if v, ok := strings.CutPrefix(line, "data: "); ok {
				data = v
			}
		}
	}

	event, _ := readEvent()
	require.Equal(t, "connected", event)
	require.Eventually(t, func() bool { return app.hub.TotalSubscribers() == 1 }, time.Second, 10*time.Millisecond)

	w = app.do(t, http.MethodPost, "/api/v1/attendance/checkin", john, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	event, data := readEvent()
	assert.Equal(t, string(attendance.EventCheckedIn), event)
	var payload attendance.Event
	require.NoError(t, json.Unmarshal([]byte(data), &payload))
	assert.Equal(t, "EMP001", payload.EmployeeID)
	assert.Equal(t, "present", payload.Status)
}
