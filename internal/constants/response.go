package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldTotal     = "total"
	ResponseFieldPage      = "page"
	ResponseFieldPageTotal = "page_total"
	ResponseFieldData      = "data"

	ResponseFieldMessage = "message"
	ResponseFieldCode    = "code"
	ResponseFieldDetails = "details"
	ResponseFieldError   = "error"
	ResponseFieldSuccess = "success"
)

// PaginationParams holds the parsed page/limit/offset triple for list endpoints.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePaginationParams parses basic pagination parameters (page, limit only)
func ParsePaginationParams(c *gin.Context) PaginationParams {
	pageStr := c.DefaultQuery(QueryParamPage, DefaultPage)
	limitStr := c.DefaultQuery(QueryParamLimit, DefaultLimit)

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < MinPage {
		page = MinPage
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Response Format Functions
func BuildListResponse(total int64, page int, pageTotal int, data any) map[string]any {
	return map[string]any{
		ResponseFieldTotal:     total,
		ResponseFieldPage:      page,
		ResponseFieldPageTotal: pageTotal,
		ResponseFieldData:      data,
	}
}

func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

// BuildDomainErrorResponse carries the machine-readable error code
// alongside the human message.
func BuildDomainErrorResponse(code, message string) map[string]any {
	return map[string]any{
		ResponseFieldCode:    code,
		ResponseFieldMessage: message,
	}
}

func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldMessage: message,
	}
}
