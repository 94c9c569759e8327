package ez

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-community-forum/internal/service"
	resp "go-community-forum/internal/transport/http/response"
)

/* ================== 轻封装：分组 + 统一出参 ================== */

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / form 取
)

// AErr 统一错误对象，携带 HTTP 状态
type AErr struct {
	Status int
	Msg    string
	Err    error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func BadRequest(msg string) error   { return &AErr{Status: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Status: http.StatusUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Status: http.StatusNotFound, Msg: msg} }

// Out carries a success payload with optional message/status overrides.
type Out struct {
	HTTPStatus int    // 默认 200
	Message    string // 默认 "ok"
	Data       any
}

// Action I 入参，O 出参
type Action[I any] struct {
	Method  string // "GET" | "POST" | "PUT" | "DELETE"
	Path    string // 例："/auth/login"、"/community-posts/:id"
	Binder  Binder
	Handler func(c *gin.Context, in *I) (Out, error)
}

// Register 在当前分组下注册动作接口
func Register[I any](e EZ, a Action[I]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusBadRequest, resp.Fail(bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			WriteErr(c, err)
			return
		}
		status := out.HTTPStatus
		if status == 0 {
			status = http.StatusOK
		}
		msg := out.Message
		if msg == "" {
			msg = "ok"
		}
		c.JSON(status, resp.OK(msg, out.Data))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

// WriteErr maps service-layer failures onto the envelope. Anything
// unclassified degrades to a sanitized 500.
func WriteErr(c *gin.Context, err error) {
	var ae *AErr
	if errors.As(err, &ae) {
		c.JSON(ae.Status, resp.Fail(ae.Error()))
		return
	}

	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, resp.Fail(ve.Msg))
		return
	}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, resp.Fail(nf.Error()))
		return
	}
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, resp.Fail("Invalid credentials"))
	case errors.Is(err, service.ErrEmailExists):
		c.JSON(http.StatusBadRequest, resp.Fail("Email already exists"))
	default:
		// 不把存储层报错透给客户端
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, resp.Fail("Internal server error"))
	}
}

// UintParam parses an integer path param, rejecting anything else before
// the store is touched.
func UintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, BadRequest("Invalid " + name)
	}
	return uint(v), nil
}
