package domain

// WalkInPartyName is the sentinel customer used when no party is chosen.
const WalkInPartyName = "Walk-in Customer"

type Party struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Document  *string `db:"document" json:"document,omitempty"`
	Phone     *string `db:"phone" json:"phone,omitempty"`
	Email     *string `db:"email" json:"email,omitempty"`
	Notes     *string `db:"notes" json:"notes,omitempty"`
	CreatedAt string  `db:"created_at" json:"created_at,omitempty"`
}
