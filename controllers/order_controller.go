package controllers

import (
	"fmt"
	"net/http"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, o)
}

// GET /orders?status=&page=&limit=
func (oc *OrderController) List(c *gin.Context) {
	page, limit := utils.Page(c)
	out, err := oc.Svc.List(utils.CurrentActor(c), entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := oc.Svc.Detail(utils.CurrentActor(c), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /orders/:id/status
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req services.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := oc.Svc.UpdateStatus(utils.CurrentActor(c), id, req.Status)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, o)
}

// DELETE /orders/:id (admin)
func (oc *OrderController) Purge(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	if err := oc.Svc.Purge(utils.CurrentActor(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}

// GET /orders/restaurant/:id
func (oc *OrderController) ListForRestaurant(c *gin.Context) {
	restID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	page, limit := utils.Page(c)
	out, err := oc.Svc.ListForRestaurant(utils.CurrentActor(c), restID, entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/restaurant/:id/export
func (oc *OrderController) ExportForRestaurant(c *gin.Context) {
	restID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	file, err := oc.Svc.ExportRestaurantOrders(utils.CurrentActor(c), restID, entity.OrderStatus(c.Query("status")))
	if err != nil {
		resp.Fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=restaurant-%d-orders.xlsx", restID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
