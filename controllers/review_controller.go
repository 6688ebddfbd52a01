package controllers

import (
	"github.com/MrTch0o/APPUAIFOOD-sub000/pkg/resp"
	"github.com/MrTch0o/APPUAIFOOD-sub000/services"
	"github.com/MrTch0o/APPUAIFOOD-sub000/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// POST /reviews
func (rc *ReviewController) Create(c *gin.Context) {
	var req services.CreateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, rev)
}

// GET /reviews/restaurant/:id (public)
func (rc *ReviewController) ListForRestaurant(c *gin.Context) {
	restID, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid restaurant id")
		return
	}
	page, limit := utils.Page(c)
	out, err := rc.Svc.ListForRestaurant(restID, page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /reviews/me
func (rc *ReviewController) ListForMe(c *gin.Context) {
	page, limit := utils.Page(c)
	out, err := rc.Svc.ListForMe(utils.CurrentUserID(c), page, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /reviews/:id
func (rc *ReviewController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid review id")
		return
	}
	var req services.UpdateReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rev, err := rc.Svc.Update(utils.CurrentUserID(c), id, &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, rev)
}

// DELETE /reviews/:id
func (rc *ReviewController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid review id")
		return
	}
	if err := rc.Svc.Delete(utils.CurrentActor(c), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": id})
}
