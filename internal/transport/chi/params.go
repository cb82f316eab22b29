package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// SearchParams are the query parameters of GET /api/v1/{entity}/search.
type SearchParams struct {
	Terms         *string
	Page          *int
	PageSize      *int
	SortField     *string
	SortDirection *string
}

// InvalidParamFormatError reports a parameter that could not be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

func bindEntity(r *http.Request) (string, error) {
	var entity string
	err := runtime.BindStyledParameterWithOptions("simple", "entity", chi.URLParam(r, "entity"), &entity,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", &InvalidParamFormatError{ParamName: "entity", Err: err}
	}
	return entity, nil
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var params SearchParams
	query := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"terms", &params.Terms},
		{"page", &params.Page},
		{"pageSize", &params.PageSize},
		{"sortField", &params.SortField},
		{"sortDirection", &params.SortDirection},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, query, b.dest); err != nil {
			return SearchParams{}, &InvalidParamFormatError{ParamName: b.name, Err: err}
		}
	}
	return params, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
