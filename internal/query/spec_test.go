package query

import (
	"testing"

	"github.com/shopdesk/backoffice/internal/platform/apierr"
)

var productSortable = map[string]string{
	"sku":     "sku",
	"name":    "name",
	"price":   "price",
	"inStock": "in_stock",
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	spec, err := Build(Params{}, productSortable)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.Limit != nil {
		t.Fatalf("expected unbounded limit, got %d", *spec.Limit)
	}
	if spec.Offset != 0 || spec.SortColumn != "" || spec.Search != "" {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestBuildSortField(t *testing.T) {
	t.Parallel()

	spec, err := Build(Params{SortField: "inStock"}, productSortable)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.SortColumn != "in_stock" {
		t.Fatalf("unexpected sort column: %q", spec.SortColumn)
	}
	if spec.SortOrder != OrderAsc {
		t.Fatalf("expected asc default when field given, got %q", spec.SortOrder)
	}

	spec, err = Build(Params{SortField: "price", SortOrder: "desc"}, productSortable)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.SortColumn != "price" || spec.SortOrder != OrderDesc {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestBuildRejectsUnknownSortField(t *testing.T) {
	t.Parallel()

	cases := []Params{
		{SortField: "id"},
		{SortField: "createdAt"},
		{SortField: "price; DROP TABLE product"},
	}
	for _, p := range cases {
		if _, err := Build(p, productSortable); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("expected invalid argument for %+v, got %v", p, err)
		}
	}

	// No allow-list at all: every sort field is invalid.
	if _, err := Build(Params{SortField: "name"}, nil); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestBuildRejectsBadWindow(t *testing.T) {
	t.Parallel()

	cases := []Params{
		{Limit: "-1"},
		{Limit: "ten"},
		{Offset: "-5"},
		{Offset: "1.5"},
	}
	for _, p := range cases {
		if _, err := Build(p, productSortable); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
			t.Fatalf("expected invalid argument for %+v, got %v", p, err)
		}
	}
}

func TestBuildRejectsBadSortOrder(t *testing.T) {
	t.Parallel()

	if _, err := Build(Params{SortField: "name", SortOrder: "up"}, productSortable); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := Build(Params{SortOrder: "asc"}, productSortable); !apierr.IsCode(err, apierr.CodeInvalidArgument) {
		t.Fatalf("expected invalid argument for order without field, got %v", err)
	}
}

func TestBuildParsesWindow(t *testing.T) {
	t.Parallel()

	spec, err := Build(Params{Limit: "25", Offset: "50"}, productSortable)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if spec.Limit == nil || *spec.Limit != 25 || spec.Offset != 50 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}
