package motor

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/pb33f/glam/motor/model"
)

func TestStringTable_Intern(t *testing.T) {
	table := NewStringTable()

	a := table.Intern(string([]byte("lipstick")))
	b := table.Intern(string([]byte("lipstick")))

	assert.Equal(t, "lipstick", b)
	assert.Same(t, unsafe.StringData(a), unsafe.StringData(b), "interned strings share storage")
	assert.Equal(t, 1, table.Size())

	assert.Equal(t, "", table.Intern(""))
	assert.Equal(t, 1, table.Size())
}

func TestStringTable_Concurrent(t *testing.T) {
	table := NewStringTable()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				table.Intern(fmt.Sprintf("brand-%d", i))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 500, table.Size())
}

func TestStringTable_InternProducts(t *testing.T) {
	table := NewStringTable()
	products := []model.Product{
		{Brand: "nyx", ProductType: "lipstick", Category: "lipstick", TagList: []string{"Vegan"}, PriceSign: "$", Currency: "USD"},
		{Brand: "nyx", ProductType: "blush", TagList: []string{"Vegan", "Natural"}},
	}

	table.InternProducts(products)

	assert.Same(t, unsafe.StringData(products[0].Brand), unsafe.StringData(products[1].Brand))
	assert.Same(t, unsafe.StringData(products[0].TagList[0]), unsafe.StringData(products[1].TagList[0]))
	// nyx, lipstick, blush, Vegan, Natural, $, USD
	assert.Equal(t, 7, table.Size())
}
