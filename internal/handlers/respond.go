package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"UserAPI/internal/dto"
	"UserAPI/internal/serializer"
	"UserAPI/internal/service"
	"UserAPI/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

const (
	detailNotFound    = "Not found."
	detailServerError = "A server error occurred."
	detailTooLarge    = "Request body too large."
)

// NotFound answers unknown routes and unknown record ids.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: detailNotFound})
}

// MethodNotAllowed answers a known route hit with a verb it does not serve.
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{
		Detail: fmt.Sprintf("Method %q not allowed.", c.Request.Method),
	})
}

// writeError maps service and serializer errors onto responses. Anything
// unrecognised is a 500 and is attached to the context for the access log.
func writeError(c *gin.Context, err error) {
	var (
		verr serializer.ValidationError
		perr *serializer.ParseError
		berr *http.MaxBytesError
	)
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c)
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, dto.FieldErrors(verr))
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: perr.Error()})
	case errors.As(err, &berr):
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Detail: detailTooLarge})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: detailServerError})
	}
}

// parseID reads a record id from the path. Anything that is not a positive
// integer cannot name a record, so it is answered with 404.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, ok := utils.ParseID(c.Param(name))
	if !ok {
		NotFound(c)
		return 0, false
	}
	return id, true
}

func readBody(c *gin.Context) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
}

// origin is scheme://host of the current request, used to build absolute links.
func origin(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		// only a known scheme may reach url and Location
		switch p := strings.ToLower(strings.TrimSpace(strings.Split(fwd, ",")[0])); p {
		case "http", "https":
			scheme = p
		}
	}
	return scheme + "://" + c.Request.Host
}
