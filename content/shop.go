package content

import (
	"fmt"
	"io/fs"
	"slices"

	"github.com/etnz/younginvestor"
)

// Item is a computer sold in the shop.
type Item struct {
	ID          string              `json:"id"`
	Name        younginvestor.Text  `json:"name"`
	Price       younginvestor.Money `json:"price"`
	Description younginvestor.Text  `json:"description"`
}

var shop = decode[[]Item]("shop.json")

// Shop returns the items for sale, cheapest first.
func Shop() ([]Item, error) {
	items, err := shop()
	return slices.Clone(items), err
}

// ShopItem returns the item with id.
func ShopItem(id string) (Item, error) {
	items, err := shop()
	if err != nil {
		return Item{}, err
	}
	k := slices.IndexFunc(items, func(it Item) bool { return it.ID == id })
	if k < 0 {
		return Item{}, fmt.Errorf("shop item %q: %w", id, fs.ErrNotExist)
	}
	return items[k], nil
}
