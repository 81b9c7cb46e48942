package result

import "github.com/kailas-cloud/storefront/internal/domain/product"

// Result is the ordered outcome of a catalog evaluation. Items reference the
// snapshot's products; Total always counts the whole filtered set.
type Result struct {
	items []*product.Product
	total int
}

// New creates a Result whose total is the number of items.
func New(items []*product.Product) Result {
	return Result{items: items, total: len(items)}
}

// Items returns the ordered products.
func (r Result) Items() []*product.Product { return r.items }

// Total returns the size of the filtered set.
func (r Result) Total() int { return r.total }

// IDs returns the product identifiers in result order.
func (r Result) IDs() []string {
	ids := make([]string, len(r.items))
	for i, p := range r.items {
		ids[i] = p.ID()
	}
	return ids
}

// Page is a window over a Result.
type Page struct {
	Items   []*product.Product
	Total   int
	Page    int
	PerPage int
	HasMore bool
}

// Paginate returns the 1-based page window of at most perPage items.
// Pages past the end are empty; Total is unchanged.
func (r Result) Paginate(page, perPage int) Page {
	n := len(r.items)
	offset := 0
	if page > 1 && perPage > 0 {
		pages := n / perPage
		if n%perPage != 0 {
			pages++
		}
		// page-1 is compared before multiplying so huge pages cannot overflow.
		if page-1 >= pages {
			offset = n
		} else {
			offset = (page - 1) * perPage
		}
	}
	end := offset
	if perPage > 0 {
		end = n
		if perPage < n-offset {
			end = offset + perPage
		}
	}
	return Page{
		Items:   r.items[offset:end],
		Total:   r.total,
		Page:    page,
		PerPage: perPage,
		HasMore: end < n,
	}
}
