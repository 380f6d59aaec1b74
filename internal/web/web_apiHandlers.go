package web

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-medhub/internal/database"
	"github.com/go-while/go-medhub/internal/models"
	"go.uber.org/zap"
)

// API endpoints under /api. All of them answer with the
// {success, data, pagination?} / {success, message} envelopes.

func (s *WebServer) listHospitals(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}

	hospitals, err := s.Store.ListHospitals(c.Request.Context(), models.HospitalFilter{Search: params.Search})
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writePage(c, hospitals, params)
}

func (s *WebServer) listDepartments(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	hospitalID, err := queryOptionalInt(c, "hospital")
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}

	departments, err := s.Store.ListDepartments(c.Request.Context(), models.DepartmentFilter{
		HospitalID: hospitalID,
		Search:     params.Search,
	})
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writePage(c, departments, params)
}

func (s *WebServer) listProjects(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	departmentID, err := queryOptionalInt(c, "department")
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}

	status := c.Query("status")
	if status == models.ProjectStatusAll {
		status = ""
	}

	projects, err := s.Store.ListProjects(c.Request.Context(), models.ProjectFilter{
		DepartmentID: departmentID,
		Status:       status,
		Search:       params.Search,
	})
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writePage(c, projects, params)
}

func (s *WebServer) getHospital(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	hospital, err := s.Store.GetHospital(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		apiError(c, http.StatusNotFound, MsgHospitalNotFound)
		return
	} else if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, hospital)
}

func (s *WebServer) getDepartment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	department, err := s.Store.GetDepartment(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		apiError(c, http.StatusNotFound, MsgDepartmentNotFound)
		return
	} else if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, department)
}

// hospitalDepartments is the payload of listHospitalDepartments
type hospitalDepartments struct {
	Hospital    hospitalRef          `json:"hospital"`
	Departments []*models.Department `json:"departments"`
}

type hospitalRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// listHospitalDepartments returns one hospital with all of its departments, unpaginated
func (s *WebServer) listHospitalDepartments(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	hospital, err := s.Store.GetHospital(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		apiError(c, http.StatusNotFound, MsgHospitalNotFound)
		return
	} else if err != nil {
		s.apiInternalError(c, err)
		return
	}
	departments, err := s.Store.ListDepartments(ctx, models.DepartmentFilter{HospitalID: &hospital.ID})
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, hospitalDepartments{
		Hospital:    hospitalRef{ID: hospital.ID, Name: hospital.Name},
		Departments: departments,
	})
}

func (s *WebServer) getProject(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		s.apiBadRequest(c, err)
		return
	}
	project, err := s.Store.GetProject(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		apiError(c, http.StatusNotFound, MsgProjectNotFound)
		return
	} else if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, project)
}

// joinProject accepts an application to join a project. The body is drained
// and discarded: nothing is validated or stored, the answer is always success.
func (s *WebServer) joinProject(c *gin.Context) {
	n, err := io.Copy(io.Discard, io.LimitReader(c.Request.Body, s.Config.Web.MaxJoinBody))
	if err != nil {
		s.log.Debug("join request body read failed", zap.String("request_id", requestID(c)), zap.Error(err))
	}
	s.log.Debug("join request received",
		zap.String("request_id", requestID(c)),
		zap.String("client_ip", c.ClientIP()),
		zap.Int64("body_bytes", n),
	)
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: MsgJoinSubmitted})
}

func (s *WebServer) getHospitalStats(c *gin.Context) {
	stats, err := database.GetHospitalStats(c.Request.Context(), s.Store)
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, stats)
}

func (s *WebServer) getDepartmentStats(c *gin.Context) {
	stats, err := database.GetDepartmentStats(c.Request.Context(), s.Store)
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, stats)
}

func (s *WebServer) getProjectStats(c *gin.Context) {
	stats, err := database.GetProjectStats(c.Request.Context(), s.Store)
	if err != nil {
		s.apiInternalError(c, err)
		return
	}
	writeData(c, stats)
}

// getHealth reports liveness for load balancers and monitoring
func (s *WebServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        s.Config.AppVersion,
		"environment":    s.Config.Environment,
		"store":          s.Store.Name(),
		"uptime_seconds": int64(time.Since(s.StartTime).Seconds()),
	})
}
