package domain

// StoreConfig is the singleton row holding company display data.
type StoreConfig struct {
	ID      int64  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	TaxID   string `db:"tax_id" json:"tax_id"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone"`
	Logo    string `db:"logo" json:"logo"`
}
