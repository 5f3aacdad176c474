package cart

import (
	"github.com/gin-gonic/gin"
)

func (this API) Increment(c *gin.Context) {
	items, err := this.Cart.Increment(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	render(c, items)
}

// Decrement drops the line once its last unit is taken out.
func (this API) Decrement(c *gin.Context) {
	items, err := this.Cart.Decrement(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	render(c, items)
}
