package search

import (
	"github.com/kailas-cloud/knowhub/internal/db"
	"github.com/kailas-cloud/knowhub/internal/domain"
	"github.com/kailas-cloud/knowhub/internal/domain/search/field"
	"github.com/kailas-cloud/knowhub/internal/domain/search/filter"
	"github.com/kailas-cloud/knowhub/internal/domain/search/page"
	"github.com/kailas-cloud/knowhub/internal/domain/search/predicate"
	"github.com/kailas-cloud/knowhub/internal/domain/search/term"
)

// compile turns raw terms into an OR filter. The first unknown field or
// invalid value aborts; dropped receives segments without "=".
func compile(reg *field.Registry, rawTerms string, dropped func(string)) (filter.Filter, error) {
	terms := term.ParseFunc(rawTerms, dropped)

	preds := make([]predicate.Predicate, 0, len(terms))
	for _, t := range terms {
		d, err := reg.Lookup(t.Field)
		if err != nil {
			return filter.Filter{}, err
		}
		p, err := predicate.Build(t, d)
		if err != nil {
			return filter.Filter{}, err
		}
		preds = append(preds, p)
	}
	return filter.Combine(preds...), nil
}

// apply windows and orders f for req. The sort field goes through the same
// whitelist as search terms and id ASC always breaks ties.
func apply(reg *field.Registry, f filter.Filter, req page.Request) (*db.Query, error) {
	sortName := req.SortField()
	if sortName == "" {
		sortName = field.IDColumn
	}

	d, err := reg.Lookup(sortName)
	if err != nil {
		return nil, err
	}
	col, ok := d.SortColumn()
	if !ok {
		return nil, domain.NewInvalidValue("sortField", sortName, "field cannot be sorted")
	}

	b := db.From(reg.Table()).Where(f).OrderBy(col, req.Direction() == page.Desc)
	if col != field.IDColumn {
		b = b.OrderBy(field.IDColumn, false)
	}
	return b.Window(req.Offset(), req.Size()).Build()
}
