package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/autofix-digital/template-base/internal/constants"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
)

// respondDomainError writes the mapped status plus code and message.
func respondDomainError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	if domainErr := apperrors.GetDomainError(err); domainErr != nil {
		c.JSON(status, constants.BuildDomainErrorResponse(domainErr.Code, domainErr.Message))
		return
	}
	c.JSON(status, constants.BuildDomainErrorResponse("INTERNAL_ERROR", "internal server error"))
}

// respondFieldErrors renders a 400 with the domain code and the list
// of cross-field validation messages.
func respondFieldErrors(c *gin.Context, domainErr *apperrors.DomainError, errs []string) {
	resp := constants.BuildDomainErrorResponse(domainErr.Code, domainErr.Message)
	resp[constants.ResponseFieldDetails] = errs
	c.JSON(apperrors.ToHTTPStatus(domainErr), resp)
}

// currentUserID returns the authenticated user id set by RequireAuth.
func currentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
