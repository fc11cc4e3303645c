package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}

func QueryToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindQuery(&params); err != nil {
		return params, err
	}

	return params, nil
}

// IntParam parses a numeric path parameter such as :id.
func IntParam(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
