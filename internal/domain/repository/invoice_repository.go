package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// InvoiceFilter narrows invoice listings. Zero values mean "any".
type InvoiceFilter struct {
	Kind         string
	LocationCode string
	Limit        int
	Offset       int
}

// InvoiceRepository is the persistence port for invoices.
type InvoiceRepository interface {
	Create(inv *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(number string) (*entity.Invoice, error)
	List(filter InvoiceFilter) ([]*entity.Invoice, error)
}
