package main

import (
	"context"

	"github.com/ledgerdesk/ledgerdesk-api/internal/application/catalog"
	"github.com/ledgerdesk/ledgerdesk-api/internal/domain/repository"
)

type catalogRepos struct {
	products    repository.ProductRepository
	customers   repository.CustomerRepository
	suppliers   repository.SupplierRepository
	accounts    repository.AccountRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
}

// particulars are the built-in line types for expense and income vouchers.
// They carry no canonical amount; the user types one per line.
var particulars = []catalog.Item{
	{ID: "rent", Label: "Rent"},
	{ID: "utilities", Label: "Utilities"},
	{ID: "office_supplies", Label: "Office supplies"},
	{ID: "transport", Label: "Transport"},
	{ID: "maintenance", Label: "Maintenance"},
	{ID: "bank_charges", Label: "Bank charges"},
	{ID: "commission", Label: "Commission"},
	{ID: "interest", Label: "Interest"},
	{ID: "miscellaneous", Label: "Miscellaneous"},
}

// registerCatalogLoaders binds every catalog type to its repository. The
// amount of each item is the value the console prefills on a new line:
// sale price for products, base pay for employees, current balance for
// accounts.
func registerCatalogLoaders(cache *catalog.Cache, repos catalogRepos) {
	cache.Register(catalog.TypeProducts, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.products.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name, Amount: r.Price})
		}
		return items, nil
	})

	cache.Register(catalog.TypeCustomers, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.customers.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name})
		}
		return items, nil
	})

	cache.Register(catalog.TypeSuppliers, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.suppliers.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name})
		}
		return items, nil
	})

	cache.Register(catalog.TypeAccounts, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.accounts.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name, Amount: r.Balance})
		}
		return items, nil
	})

	cache.Register(catalog.TypeEmployees, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.employees.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name, Amount: r.BasePay})
		}
		return items, nil
	})

	cache.Register(catalog.TypeDepartments, func(_ context.Context, companyID string) ([]catalog.Item, error) {
		rows, err := repos.departments.ListByCompany(companyID, catalogPageSize, 0)
		if err != nil {
			return nil, err
		}
		items := make([]catalog.Item, 0, len(rows))
		for _, r := range rows {
			items = append(items, catalog.Item{ID: r.ID, Label: r.Name})
		}
		return items, nil
	})

	cache.Register(catalog.TypeParticulars, func(_ context.Context, _ string) ([]catalog.Item, error) {
		out := make([]catalog.Item, len(particulars))
		copy(out, particulars)
		return out, nil
	})
}
