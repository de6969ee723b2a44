package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-admin/internal/application/user"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-admin/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-admin/pkg/response"
)

// UserHandler 用户与认证HTTP处理器
type UserHandler struct {
	registerUseCase      *appuser.RegisterUseCase
	loginUseCase         *appuser.LoginUseCase
	getProfileUseCase    *appuser.GetProfileUseCase
	updateProfileUseCase *appuser.UpdateProfileUseCase
	refreshTokenUseCase  *appuser.RefreshTokenUseCase
	logoutUseCase        *appuser.LogoutUseCase
	changeRoleUseCase    *appuser.ChangeRoleUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	getProfileUseCase *appuser.GetProfileUseCase,
	updateProfileUseCase *appuser.UpdateProfileUseCase,
	refreshTokenUseCase *appuser.RefreshTokenUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	changeRoleUseCase *appuser.ChangeRoleUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:      registerUseCase,
		loginUseCase:         loginUseCase,
		getProfileUseCase:    getProfileUseCase,
		updateProfileUseCase: updateProfileUseCase,
		refreshTokenUseCase:  refreshTokenUseCase,
		logoutUseCase:        logoutUseCase,
		changeRoleUseCase:    changeRoleUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册新用户（角色固定为customer），成功后直接返回Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=appuser.AuthResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已注册"
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User registered successfully", resp)
}

// Login 用户登录
// @Summary      用户登录
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.AuthResponse}
// @Failure      401 {object} response.Response "邮箱或密码错误"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OKWithMessage(c, "Login successful", resp)
}

// Me 当前用户资料
// @Summary      当前用户资料
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.UserResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	resp, err := h.getProfileUseCase.Execute(c.Request.Context(), middleware.MustGetUser(c).ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// UpdateProfile 修改资料
// @Summary      修改当前用户资料
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response{data=appuser.UserResponse}
// @Router       /api/v1/auth/me [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.updateProfileUseCase.Execute(c.Request.Context(), appuser.UpdateProfileRequest{
		UserID:  middleware.MustGetUser(c).ID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "Profile updated successfully", resp)
}

// Refresh 刷新Token
// @Summary      用Refresh Token换取新的Token对
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshTokenRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=jwt.TokenPair}
// @Failure      403 {object} response.Response "Token无效或已过期"
// @Router       /api/v1/auth/refresh [post]
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.refreshTokenUseCase.Execute(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, pair)
}

// Logout 登出
// @Summary      登出（当前Token加入黑名单）
// @Description  请求体可携带refresh_token，一并加入黑名单
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.LogoutRequest false "Refresh Token"
// @Success      200 {object} response.Response
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), appuser.LogoutRequest{
		AccessToken:  middleware.GetToken(c),
		RefreshToken: req.RefreshToken,
	}); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logged out successfully")
}

// ChangeRole 修改用户角色
// @Summary      修改用户角色（管理员）
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Param        request body dto.ChangeRoleRequest true "角色"
// @Success      200 {object} response.Response{data=appuser.UserResponse}
// @Failure      403 {object} response.Response "需要管理员权限"
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ChangeRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.changeRoleUseCase.Execute(c.Request.Context(), appuser.ChangeRoleRequest{UserID: id, Role: req.Role})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OKWithMessage(c, "User role updated successfully", resp)
}
