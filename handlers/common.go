package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"smartstay/services/submit"
	"smartstay/utils"
)

// uintParam parses a numeric path parameter, replying 400 on failure.
func uintParam(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name, c.Param(name)+" is not a valid id")
		return 0, false
	}
	return v, true
}

// respondReceipt maps a terminal submission receipt onto an HTTP response.
// User declines and local validation problems are the caller's to fix;
// reverts mean chain state moved underneath them; everything else is the
// node's fault.
func respondReceipt(c *gin.Context, r *submit.Receipt) {
	if r.State == submit.StateSucceeded {
		c.JSON(http.StatusOK, r)
		return
	}
	status := http.StatusInternalServerError
	if r.Err != nil {
		switch r.Err.Code {
		case submit.CodeLocalValidation, submit.CodeUserDeclined:
			status = http.StatusBadRequest
		case submit.CodeContractReverted:
			status = http.StatusConflict
		case submit.CodeProviderError:
			status = http.StatusBadGateway
		}
	}
	c.JSON(status, r)
}
