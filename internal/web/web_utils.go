package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-medhub/internal/models"
	"go.uber.org/zap"
)

// Fixed API messages, kept in the language the front end shows
const (
	MsgProjectNotFound    = "课题不存在"
	MsgHospitalNotFound   = "医院不存在"
	MsgDepartmentNotFound = "科室不存在"
	MsgJoinSubmitted      = "申请已提交，请等待审核"
	MsgInternalError      = "服务器内部错误"
)

// errNotPositive is wrapped by ParamError for values below 1
var errNotPositive = errors.New("must be >= 1")

// ParamError reports a query or path parameter that could not be used
type ParamError struct {
	Name  string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s parameter %q: %v", e.Name, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// parseInt parses a base 10 integer parameter
func parseInt(name, value string) (int, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, &ParamError{Name: name, Value: value, Err: err}
	}
	return i, nil
}

// queryPositiveInt reads an integer >= 1 from the query string, def if absent
func queryPositiveInt(c *gin.Context, name string, def int) (int, error) {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return def, nil
	}
	i, err := parseInt(name, value)
	if err != nil {
		return 0, err
	}
	if i < 1 {
		return 0, &ParamError{Name: name, Value: value, Err: errNotPositive}
	}
	return i, nil
}

// queryOptionalInt reads an optional integer filter. An empty value counts as absent.
func queryOptionalInt(c *gin.Context, name string) (*int, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	i, err := parseInt(name, value)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// pathID reads the :id path parameter
func pathID(c *gin.Context) (int, error) {
	return parseInt("id", c.Param("id"))
}

// listParams are the paging and search parameters shared by list endpoints
type listParams struct {
	Page     int
	PageSize int
	Search   string
}

func parseListParams(c *gin.Context) (listParams, error) {
	page, err := queryPositiveInt(c, "page", models.DefaultPage)
	if err != nil {
		return listParams{}, err
	}
	pageSize, err := queryPositiveInt(c, "pageSize", models.DefaultPageSize)
	if err != nil {
		return listParams{}, err
	}
	return listParams{Page: page, PageSize: pageSize, Search: c.Query("search")}, nil
}

// writePage paginates items and writes the list envelope
func writePage[T any](c *gin.Context, items []T, p listParams) {
	window, info := models.Paginate(items, p.Page, p.PageSize)
	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       window,
		Pagination: info,
	})
}

// writeData writes a detail or stats envelope
func writeData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.DataResponse{Success: true, Data: data})
}

// apiError writes a failure envelope and stops the chain
func apiError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, models.MessageResponse{Success: false, Message: message})
}

// apiBadRequest reports an unusable parameter
func (s *WebServer) apiBadRequest(c *gin.Context, err error) {
	s.log.Debug("bad request", zap.String("path", c.Request.URL.Path), zap.String("request_id", requestID(c)), zap.Error(err))
	apiError(c, http.StatusBadRequest, err.Error())
}

// apiInternalError logs err and reports a generic failure
func (s *WebServer) apiInternalError(c *gin.Context, err error) {
	s.log.Error("store failure", zap.String("path", c.Request.URL.Path), zap.String("request_id", requestID(c)), zap.Error(err))
	apiError(c, http.StatusInternalServerError, MsgInternalError)
}

func isAPIPath(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// renderNotFound answers unknown routes and missing files:
// JSON below /api, the fallback page everywhere else
func (s *WebServer) renderNotFound(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		apiError(c, http.StatusNotFound, fmt.Sprintf("route not found: %s %s", c.Request.Method, c.Request.URL.Path))
		return
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", s.errorPages.notFound)
	c.Abort()
}

// renderInternalError answers unhandled faults
func (s *WebServer) renderInternalError(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		apiError(c, http.StatusInternalServerError, MsgInternalError)
		return
	}
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", s.errorPages.internal)
	c.Abort()
}
