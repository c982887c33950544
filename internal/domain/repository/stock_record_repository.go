package repository

import "github.com/nexvolt/evretail-api/internal/domain/entity"

// StockFilter narrows ledger listings. Zero values mean "any".
type StockFilter struct {
	Kind         string
	LocationCode string
	ItemName     string
	Limit        int
	Offset       int
}

// StockRecordRepository is the persistence port for the stock ledger.
type StockRecordRepository interface {
	// Latest returns the newest record for the (kind, location, item) pair, ordered by
	// record_date desc then serial desc, or nil when the pair has no records.
	Latest(kind, locationCode, itemName string) (*entity.StockRecord, error)
	// LatestForUpdate is Latest with the returned row locked (SELECT ... FOR UPDATE).
	// Only meaningful inside a transaction.
	LatestForUpdate(kind, locationCode, itemName string) (*entity.StockRecord, error)
	// NextSerial returns max(serial)+1 for the kind's ledger. Serials are never reused,
	// even after deletes.
	NextSerial(kind string) (int64, error)
	Create(rec *entity.StockRecord) error
	GetBySerial(kind string, serial int64) (*entity.StockRecord, error)
	List(filter StockFilter) ([]*entity.StockRecord, error)
	// Delete hard-removes a record. Admin-only; leaves no audit trail.
	Delete(kind string, serial int64) error
}
