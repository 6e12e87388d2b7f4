package handlers

import (
	"net/http"

	"UserAPI/internal/dto"
	"UserAPI/internal/serializer"

	"github.com/gin-gonic/gin"
)

// Hello godoc
// @Summary      Greeting
// @Description  Answers any method with the same body; input is ignored.
// @Tags         hello
// @Produce      json
// @Success      200  {object}  dto.HelloResponse
// @Router       /hello [get]
// @Router       /hello [post]
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HelloResponse{Hello: "world"})
}

// APIRoot godoc
// @Summary      API root
// @Tags         root
// @Produce      json
// @Success      200  {object}  dto.APIRootResponse
// @Router       / [get]
func APIRoot(ser *serializer.HyperlinkedUserSerializer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIRootResponse{Users: ser.CollectionURL(origin(c))})
	}
}
