package controllers

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	cart, err := h.Svc.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, cart)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.Add(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, line)
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQty(c *gin.Context) {
	itemID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid cart item id")
		return
	}
	var req services.UpdateCartItemIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	line, err := h.Svc.UpdateQty(utils.CurrentUserID(c), itemID, req.Quantity)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, line)
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	itemID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid cart item id")
		return
	}
	if err := h.Svc.RemoveItem(utils.CurrentUserID(c), itemID); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"removed": itemID})
}

// DELETE /cart/clear
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(utils.CurrentUserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"cleared": true})
}
