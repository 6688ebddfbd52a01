package controllers

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Svc *services.ProductService
}

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Svc: s}
}

// GET /restaurants/:id/products?all=true
func (ctl *ProductController) ListByRestaurant(c *gin.Context) {
	restID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	items, err := ctl.Svc.ListByRestaurant(utils.CurrentActor(c), restID, c.Query("all") == "true")
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /products/:id
func (ctl *ProductController) Get(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	p, err := ctl.Svc.Get(id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// POST /products
func (ctl *ProductController) Create(c *gin.Context) {
	var req services.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Svc.Create(utils.CurrentActor(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, p)
}

// PATCH /products/:id
func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req services.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Svc.Update(utils.CurrentActor(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// PATCH /products/:id/availability
func (ctl *ProductController) SetAvailability(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req services.AvailabilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := ctl.Svc.SetAvailability(utils.CurrentActor(c), id, *req.IsAvailable)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, p)
}

// DELETE /products/:id
func (ctl *ProductController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	if err := ctl.Svc.Delete(utils.CurrentActor(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
