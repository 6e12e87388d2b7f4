package handlers

import (
	"net/http"

	"UserAPI/internal/serializer"
	"UserAPI/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the /users/ collection and its detail routes.
type UserHandler struct {
	svc *service.UserService
	ser *serializer.HyperlinkedUserSerializer
}

func NewUserHandler(svc *service.UserService, ser *serializer.HyperlinkedUserSerializer) *UserHandler {
	return &UserHandler{svc: svc, ser: ser}
}

// List godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /users/ [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ser.ToResponses(origin(c), list))
}

// Create godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UserRequest  true  "User"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.FieldErrors
// @Router       /users/ [post]
func (h *UserHandler) Create(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := h.ser.Validate(body, false)
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := h.svc.Create(c.Request.Context(), data)
	if err != nil {
		writeError(c, err)
		return
	}
	resp := h.ser.ToResponse(origin(c), u)
	c.Header("Location", resp.URL)
	c.JSON(http.StatusCreated, resp)
}

// Retrieve godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id}/ [get]
func (h *UserHandler) Retrieve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	u, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ser.ToResponse(origin(c), u))
}

// Update godoc
// @Summary      Replace a user
// @Description  Every field is required.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "User ID"
// @Param        body  body      dto.UserRequest  true  "User"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /users/{id}/ [put]
func (h *UserHandler) Update(c *gin.Context) {
	h.update(c, false)
}

// PartialUpdate godoc
// @Summary      Update some fields of a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "User ID"
// @Param        body  body      dto.UserRequest  true  "Fields to change"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.FieldErrors
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /users/{id}/ [patch]
func (h *UserHandler) PartialUpdate(c *gin.Context) {
	h.update(c, true)
}

// update resolves the record before looking at the body, so an unknown id
// is a 404 whatever was sent.
func (h *UserHandler) update(c *gin.Context, partial bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	exists, err := h.svc.Exists(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if !exists {
		NotFound(c)
		return
	}

	body, err := readBody(c)
	if err != nil {
		writeError(c, err)
		return
	}
	data, err := h.ser.Validate(body, partial)
	if err != nil {
		writeError(c, err)
		return
	}
	u, err := h.svc.Update(ctx, id, data)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ser.ToResponse(origin(c), u))
}

// Destroy godoc
// @Summary      Delete a user
// @Tags         users
// @Param        id   path  int  true  "User ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id}/ [delete]
func (h *UserHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
