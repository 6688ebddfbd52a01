package controllers

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type AddressController struct{ Svc *services.AddressService }

func NewAddressController(s *services.AddressService) *AddressController {
	return &AddressController{Svc: s}
}

// GET /addresses
func (h *AddressController) List(c *gin.Context) {
	items, err := h.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /addresses/:id
func (h *AddressController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	a, err := h.Svc.Get(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, a)
}

// POST /addresses
func (h *AddressController) Create(c *gin.Context) {
	var req services.CreateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, a)
}

// PATCH /addresses/:id
func (h *AddressController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	var req services.UpdateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	a, err := h.Svc.Update(utils.CurrentUserID(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, a)
}

// PATCH /addresses/:id/default
func (h *AddressController) SetDefault(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	a, err := h.Svc.SetDefault(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, a)
}

// DELETE /addresses/:id
func (h *AddressController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
