package cart

import (
	"github.com/gin-gonic/gin"
)

func (this API) Get(c *gin.Context) {
	items, err := this.Cart.Items()
	if err != nil {
		fail(c, err)
		return
	}

	render(c, items)
}
