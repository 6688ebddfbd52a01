package controllers

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

// AdminController manages user accounts. Every route is behind the ADMIN gate.
type AdminController struct {
	Users *services.UserService
}

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

// GET /users
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, limit := utils.Page(c)
	out, err := ac.Users.List(page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /users/:id
func (ac *AdminController) GetUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	u, err := ac.Users.Get(id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}

// PATCH /users/:id
func (ac *AdminController) UpdateUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	var req services.AdminUpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := ac.Users.Update(utils.CurrentActor(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}

// DELETE /users/:id
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid user id")
		return
	}
	if err := ac.Users.Delete(utils.CurrentActor(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
