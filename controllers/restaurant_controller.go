package controllers

import (
	"strings"

	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/repository"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Service *services.RestaurantService
}

func NewRestaurantController(s *services.RestaurantService) *RestaurantController {
	return &RestaurantController{Service: s}
}

// GET /restaurants?category=&q=&page=&limit=
func (ctl *RestaurantController) List(c *gin.Context) {
	page, limit := utils.Page(c)
	f := repository.RestaurantFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
	out, err := ctl.Service.List(f, page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id
func (ctl *RestaurantController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	r, err := ctl.Service.Get(utils.CurrentActor(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

// GET /restaurants/mine
func (ctl *RestaurantController) Mine(c *gin.Context) {
	rests, err := ctl.Service.Mine(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, rests)
}

// POST /restaurants
func (ctl *RestaurantController) Create(c *gin.Context) {
	var req services.CreateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := ctl.Service.Create(utils.CurrentActor(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, r)
}

// PATCH /restaurants/:id
func (ctl *RestaurantController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	var req services.UpdateRestaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	r, err := ctl.Service.Update(utils.CurrentActor(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

// DELETE /restaurants/:id
func (ctl *RestaurantController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	if err := ctl.Service.Delete(utils.CurrentActor(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
