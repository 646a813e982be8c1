package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blood-portal/internal/domain"
	"blood-portal/internal/service"
	"blood-portal/internal/transport/http/ez"
	mdw "blood-portal/internal/transport/http/middleware"
	resp "blood-portal/internal/transport/http/response"
)

type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

type registerIn struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// identifier 为旧版客户端使用的字段名
type loginIn struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Identifier      string `json:"identifier"`
	Password        string `json:"password"`
}

type loginOut struct {
	resp.Resp
	Token string          `json:"token"`
	User  domain.UserView `json:"user"`
}

type userOut struct {
	resp.Resp
	User *domain.User `json:"user"`
}

type updateProfileIn struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type changePasswordIn struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// Mount public 不经过鉴权；protected 已挂 AuthJWT
func (h *AuthHandler) Mount(public, protected *gin.RouterGroup) {
	pub := ez.New(public)

	ez.RegisterAction(pub, ez.Action[registerIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *registerIn) (resp.Resp, error) {
			_, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
				FullName:        in.FullName,
				Email:           in.Email,
				Username:        in.Username,
				Password:        in.Password,
				ConfirmPassword: in.ConfirmPassword,
			})
			if err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Registration successful! Please login to continue."), nil
		},
	})

	ez.RegisterAction(pub, ez.Action[loginIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (loginOut, error) {
			ident := in.UsernameOrEmail
			if ident == "" {
				ident = in.Identifier
			}
			tok, u, err := h.svc.Login(c.Request.Context(), ident, in.Password)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Resp: resp.OK("Login successful!"), Token: tok, User: u.View()}, nil
		},
	})

	priv := ez.New(protected)
	profile := func(c *gin.Context, _ *struct{}) (userOut, error) {
		u, err := h.svc.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
		if err != nil {
			return userOut{}, err
		}
		return userOut{Resp: resp.Resp{Status: resp.StatusSuccess}, User: u}, nil
	}
	ez.RegisterAction(priv, ez.Action[struct{}, userOut]{
		Method: http.MethodGet, Path: "/verify", Binder: ez.BindNone, Auth: true, Handler: profile,
	})
	ez.RegisterAction(priv, ez.Action[struct{}, userOut]{
		Method: http.MethodGet, Path: "/profile", Binder: ez.BindNone, Auth: true, Handler: profile,
	})

	ez.RegisterAction(priv, ez.Action[updateProfileIn, userOut]{
		Method: http.MethodPost,
		Path:   "/update-profile",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *updateProfileIn) (userOut, error) {
			u, err := h.svc.UpdateProfile(c.Request.Context(), c.GetString(mdw.KeyUserID), service.ProfileUpdate{
				FullName: in.FullName,
				Email:    in.Email,
			})
			if err != nil {
				return userOut{}, err
			}
			return userOut{Resp: resp.OK("Profile updated successfully"), User: u}, nil
		},
	})

	ez.RegisterAction(priv, ez.Action[changePasswordIn, resp.Resp]{
		Method: http.MethodPost,
		Path:   "/change-password",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *changePasswordIn) (resp.Resp, error) {
			err := h.svc.ChangePassword(c.Request.Context(), c.GetString(mdw.KeyUserID), service.ChangePasswordInput{
				CurrentPassword:    in.CurrentPassword,
				NewPassword:        in.NewPassword,
				ConfirmNewPassword: in.ConfirmNewPassword,
			})
			if err != nil {
				return resp.Resp{}, err
			}
			return resp.OK("Password changed successfully"), nil
		},
	})
}
