package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-community-forum/internal/service"
	"go-community-forum/internal/transport/http/ez"
)

// AdminHandler 管理端用户 CRUD，分组已由 AuthJWT("admin") 把关
type AdminHandler struct {
	svc *service.UserService
}

func NewAdminHandler(svc *service.UserService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type userIn struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Profile  string `json:"profile"`
}

func (in *userIn) toInput() service.UserInput {
	return service.UserInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
		Profile:  in.Profile,
	}
}

func (h *AdminHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Out, error) {
			users, err := h.svc.List()
			if err != nil {
				return ez.Out{}, err
			}
			return ez.Out{Message: "Users retrieved successfully", Data: users}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Out, error) {
			id, err := ez.UintParam(c, "id")
			if err != nil {
				return ez.Out{}, err
			}
			u, err := h.svc.Get(id)
			if err != nil {
				return ez.Out{}, err
			}
			return ez.Out{Message: "ok", Data: u}, nil
		},
	})

	ez.Register(e, ez.Action[userIn]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (ez.Out, error) {
			u, err := h.svc.Create(in.toInput())
			if err != nil {
				return ez.Out{}, err
			}
			return ez.Out{HTTPStatus: http.StatusCreated, Message: "User created successfully", Data: u}, nil
		},
	})

	ez.Register(e, ez.Action[userIn]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (ez.Out, error) {
			id, err := ez.UintParam(c, "id")
			if err != nil {
				return ez.Out{}, err
			}
			u, err := h.svc.Update(id, in.toInput())
			if err != nil {
				return ez.Out{}, err
			}
			return ez.Out{Message: "User updated successfully", Data: u}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (ez.Out, error) {
			id, err := ez.UintParam(c, "id")
			if err != nil {
				return ez.Out{}, err
			}
			if err := h.svc.Delete(id); err != nil {
				return ez.Out{}, err
			}
			return ez.Out{Message: "User deleted successfully"}, nil
		},
	})
}
