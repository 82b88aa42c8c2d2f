package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError emits an error envelope carrying a machine-readable code so
// clients can branch on the failure kind instead of parsing message text.
func RespondError(c *gin.Context, httpStatus int, errorCode string, message string) {
	c.JSON(httpStatus, StandardApiResponse{
		Status:     "error",
		StatusCode: httpStatus,
		Message:    message,
		Code:       errorCode,
	})
}
