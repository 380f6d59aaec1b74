package web

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-medhub/internal/config"
	"github.com/go-while/go-medhub/internal/database"
	"github.com/go-while/go-medhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHospitalsDefaults(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/hospitals")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	body := decode[listEnvelope[models.Hospital]](t, rec)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 4)
	assert.Equal(t, 1, body.Data[0].ID)
	assert.Equal(t, "北京协和医院", body.Data[0].Name)
	assert.Equal(t, &models.PaginationInfo{CurrentPage: 1, TotalPages: 1, TotalCount: 4, PerPage: 6}, body.Pagination)
}

func TestListHospitalsPaging(t *testing.T) {
	s := newTestServer(t)

	body := decode[listEnvelope[models.Hospital]](t, get(s, "/api/hospitals?page=2&pageSize=3"))
	require.Len(t, body.Data, 1)
	assert.Equal(t, 4, body.Data[0].ID)
	assert.Equal(t, &models.PaginationInfo{CurrentPage: 2, TotalPages: 2, TotalCount: 4, PerPage: 3}, body.Pagination)
}

func TestListBeyondLastPageIsEmptyArray(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/projects?page=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)

	body := decode[listEnvelope[models.Project]](t, rec)
	assert.Empty(t, body.Data)
	assert.Equal(t, 5, body.Pagination.CurrentPage)
	assert.Equal(t, 1, body.Pagination.TotalPages)
	assert.Equal(t, 2, body.Pagination.TotalCount)
}

func TestListSearchWithoutMatches(t *testing.T) {
	s := newTestServer(t)

	body := decode[listEnvelope[models.Hospital]](t, get(s, "/api/hospitals?search=nothing-like-this"))
	assert.Empty(t, body.Data)
	assert.Equal(t, 0, body.Pagination.TotalCount)
	assert.Equal(t, 0, body.Pagination.TotalPages)
}

func TestListFilters(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		target string
		ids    []int
	}{
		{"hospital search", "/api/hospitals?search=协和", []int{1}},
		{"departments of hospital 1", "/api/departments?hospital=1", []int{1, 2}},
		{"departments of hospital 2", "/api/departments?hospital=2", []int{3}},
		{"departments of unknown hospital", "/api/departments?hospital=42", []int{}},
		{"empty hospital filter", "/api/departments?hospital=", []int{1, 2, 3}},
		{"department search", "/api/departments?search=神经", []int{2}},
		{"projects of department 1", "/api/projects?department=1", []int{1}},
		{"project search by title", "/api/projects?search=脑肿瘤", []int{2}},
		{"project search by leader", "/api/projects?search=张教授", []int{1}},
		{"project filter and search", "/api/projects?department=1&search=李", []int{}},
		{"projects by status", "/api/projects?status=ongoing", []int{2}},
		{"projects of any status", "/api/projects?status=all", []int{1, 2}},
		{"projects of unknown status", "/api/projects?status=completed", []int{}},
		{"department and status", "/api/projects?department=1&status=recruiting", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(s, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			body := decode[listEnvelope[struct {
				ID int `json:"id"`
			}]](t, rec)
			ids := []int{}
			for _, item := range body.Data {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, len(tt.ids), body.Pagination.TotalCount)
		})
	}
}

func TestListBadParams(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target  string
		message string
	}{
		{"/api/hospitals?page=abc", `invalid page parameter "abc"`},
		{"/api/hospitals?page=0", `invalid page parameter "0": must be >= 1`},
		{"/api/departments?pageSize=0", `invalid pageSize parameter "0": must be >= 1`},
		{"/api/projects?pageSize=-3", `invalid pageSize parameter "-3"`},
		{"/api/departments?hospital=x", `invalid hospital parameter "x"`},
		{"/api/projects?department=1.5", `invalid department parameter "1.5"`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(s, tt.target)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[models.MessageResponse](t, rec)
			assert.False(t, body.Success)
			assert.True(t, strings.HasPrefix(body.Message, tt.message), body.Message)
		})
	}
}

func TestGetProject(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/projects/1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[dataEnvelope[models.Project]](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.ID)
	assert.Equal(t, "心血管疾病基因治疗研究", body.Data.Title)
	assert.Equal(t, models.ProjectStatusRecruiting, body.Data.Status)
	assert.Equal(t, []string{"基因治疗", "心血管", "分子生物学"}, body.Data.Tags)
	assert.True(t, body.Data.CanJoin)
	assert.False(t, body.Data.IsJoined)
}

func TestGetDetailNotFound(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		target  string
		message string
	}{
		{"/api/projects/9999", MsgProjectNotFound},
		{"/api/hospitals/9999", MsgHospitalNotFound},
		{"/api/departments/0", MsgDepartmentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(s, tt.target)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, models.MessageResponse{Success: false, Message: tt.message}, decode[models.MessageResponse](t, rec))
		})
	}
}

func TestGetDetailBadID(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{"/api/projects/abc", "/api/hospitals/1x", "/api/projects/join"} {
		rec := get(s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.False(t, decode[models.MessageResponse](t, rec).Success)
	}
}

func TestGetHospitalAndDepartment(t *testing.T) {
	s := newTestServer(t)

	h := decode[dataEnvelope[models.Hospital]](t, get(s, "/api/hospitals/3"))
	assert.Equal(t, "四川大学华西医院", h.Data.Name)

	d := decode[dataEnvelope[models.Department]](t, get(s, "/api/departments/3"))
	assert.Equal(t, "血液科", d.Data.Name)
	assert.Equal(t, 2, d.Data.HospitalID)
}

func TestJoinProjectChangesNothing(t *testing.T) {
	s := newTestServer(t)
	before := get(s, "/api/projects/1").Body.String()
	beforeList := get(s, "/api/projects").Body.String()

	for _, body := range []string{`{"projectId":1}`, ``, `not json at all`} {
		rec := post(s, "/api/projects/join", body)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.MessageResponse{Success: true, Message: MsgJoinSubmitted}, decode[models.MessageResponse](t, rec))
	}

	assert.Equal(t, before, get(s, "/api/projects/1").Body.String())
	assert.Equal(t, beforeList, get(s, "/api/projects").Body.String())
}

func TestListHospitalDepartments(t *testing.T) {
	s := newTestServer(t)

	type payload struct {
		Hospital struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"hospital"`
		Departments []models.Department `json:"departments"`
	}

	rec := get(s, "/api/departments/hospital/1")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode[dataEnvelope[payload]](t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Data.Hospital.ID)
	assert.Equal(t, "北京协和医院", body.Data.Hospital.Name)
	require.Len(t, body.Data.Departments, 2)
	assert.Equal(t, "心血管内科", body.Data.Departments[0].Name)
	assert.Equal(t, "神经外科", body.Data.Departments[1].Name)

	rec = get(s, "/api/departments/hospital/4")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"departments":[]`)

	rec = get(s, "/api/departments/hospital/99")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.MessageResponse{Success: false, Message: MsgHospitalNotFound}, decode[models.MessageResponse](t, rec))

	rec = get(s, "/api/departments/hospital/x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// the department detail route still answers next to the hospital route
	d := decode[dataEnvelope[models.Department]](t, get(s, "/api/departments/2"))
	assert.Equal(t, "神经外科", d.Data.Name)
}

func TestHeadRequests(t *testing.T) {
	s := newTestServer(t)

	for _, target := range []string{
		"/",
		"/admin",
		"/ping",
		"/css/style.css",
		"/api/health",
		"/api/hospitals",
		"/api/projects/1",
		"/api/departments/hospital/1",
	} {
		rec := doRequest(s, http.MethodHead, target, nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}

	rec := doRequest(s, http.MethodHead, "/api/projects/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinProjectOversizedBody(t *testing.T) {
	s := newTestServer(t, func(cfg *config.MainConfig) { cfg.Web.MaxJoinBody = 16 })

	rec := post(s, "/api/projects/join", strings.Repeat("x", 4096))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStats(t *testing.T) {
	s := newTestServer(t)

	hs := decode[dataEnvelope[database.HospitalStats]](t, get(s, "/api/hospitals/stats"))
	assert.True(t, hs.Success)
	assert.Equal(t, 4, hs.Data.TotalCount)
	assert.Equal(t, []database.LevelCount{{Level: "三甲", Count: 4}}, hs.Data.ByLevel)
	assert.Len(t, hs.Data.ByLocation, 4)

	ds := decode[dataEnvelope[database.DepartmentStats]](t, get(s, "/api/departments/stats"))
	assert.Equal(t, 3, ds.Data.TotalCount)
	assert.Equal(t, []database.HospitalDepartmentCount{
		{HospitalID: 1, HospitalName: "北京协和医院", DepartmentCount: 2},
		{HospitalID: 2, HospitalName: "上海交通大学医学院附属瑞金医院", DepartmentCount: 1},
	}, ds.Data.ByHospital)

	ps := decode[dataEnvelope[database.ProjectStats]](t, get(s, "/api/projects/stats"))
	assert.Equal(t, 2, ps.Data.TotalCount)
	assert.Equal(t, []database.StatusCount{
		{Status: models.ProjectStatusOngoing, Count: 1},
		{Status: models.ProjectStatusRecruiting, Count: 1},
	}, ps.Data.ByStatus)
}

func TestHealthAndPing(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, database.DriverMemory, body["store"])
	ts, ok := body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)

	rec = get(s, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestUnknownAPIRoute(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, models.MessageResponse{Success: false, Message: "route not found: GET /api/nope"}, decode[models.MessageResponse](t, rec))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/hospitals")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	rec = get(s, "/api/hospitals", RequestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	long := strings.Repeat("a", maxRequestIDLen+1)
	rec = get(s, "/api/hospitals", RequestIDHeader, long)
	assert.NotEqual(t, long, rec.Header().Get(RequestIDHeader))
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := get(s, "/api/hospitals")
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRecoveryMiddleware(t *testing.T) {
	s := newTestServer(t)
	s.Router.GET("/api/boom", func(c *gin.Context) { panic("boom") })
	s.Router.GET("/boom", func(c *gin.Context) { panic("boom") })

	rec := get(s, "/api/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, models.MessageResponse{Success: false, Message: MsgInternalError}, decode[models.MessageResponse](t, rec))

	rec = get(s, "/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "500")
}

func TestParamError(t *testing.T) {
	_, err := parseInt("page", "x")
	require.Error(t, err)

	var perr *ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "page", perr.Name)
	assert.Equal(t, "x", perr.Value)
}
