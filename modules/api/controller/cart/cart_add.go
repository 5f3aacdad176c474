package cart

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tryanzu/cart/modules/cart"
)

// Add a product to the cart, or one more unit of it. The title is kept as
// sent; JSON responses escape markup.
func (this API) Add(c *gin.Context) {
	var form CartAddForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(400, gin.H{"status": "error", "message": "Malformed request."})
		return
	}

	items, err := this.Cart.Add(cart.AddInput{
		ID:       strings.TrimSpace(form.Id),
		Title:    form.Title,
		Image:    strings.TrimSpace(form.Image),
		Price:    form.Price,
		Quantity: form.Quantity,
	})
	if err != nil {
		fail(c, err)
		return
	}

	render(c, items)
}
