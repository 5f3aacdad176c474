package cart

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/cart/modules/cart"
)

type API struct {
	Cart *cart.Cart `inject:""`
}

type CartAddForm struct {
	Id       string `json:"id" binding:"required"`
	Title    string `json:"title"`
	Image    string `json:"image_url"`
	Price    int64  `json:"price" binding:"min=0"`
	Quantity int    `json:"quantity"`
}

func render(c *gin.Context, items cart.State) {
	c.JSON(200, gin.H{
		"status": "okay",
		"items":  items,
		"count":  items.Count(),
		"total":  items.Total(),
	})
}

func fail(c *gin.Context, err error) {
	var invalid *cart.InvalidStateError
	switch {
	case cart.IsNotFound(err):
		c.JSON(404, gin.H{"status": "error", "message": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(400, gin.H{"status": "error", "message": err.Error()})
	default:
		c.JSON(500, gin.H{"status": "error", "message": err.Error()})
	}
}
