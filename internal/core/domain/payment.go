package domain

// PaymentIntent statuses.
const (
	PaymentPending   = "PENDING"
	PaymentSucceeded = "SUCCEEDED"
	PaymentRefunded  = "REFUNDED"
)

// Retrait (withdrawal) statuses.
const (
	RetraitDemande  = "DEMANDE"
	RetraitTraite   = "TRAITE"
	RetraitRefuse   = "REFUSE"
)

// PaymentIntent mirrors the payment provider intent the backend creates for
// a listing.
type PaymentIntent struct {
	ID           string  `json:"paymentIntentId,omitempty"`
	ClientSecret string  `json:"clientSecret,omitempty"`
	AnnonceID    int     `json:"annonceId,omitempty"`
	Montant      float64 `json:"montant,omitempty"`
	Statut       string  `json:"statut,omitempty"`
}

// Wallet is a courier's or provider's platform wallet.
type Wallet struct {
	Solde        float64 `json:"solde"`
	SoldeEnAttente float64 `json:"soldeEnAttente,omitempty"`
	IBAN         string  `json:"iban,omitempty"`
	NomTitulaire string  `json:"nomTitulaire,omitempty"`
}

// Transaction is one wallet movement.
type Transaction struct {
	ID        int     `json:"idTransaction,omitempty"`
	Montant   float64 `json:"montant"`
	Type      string  `json:"type,omitempty"`
	Libelle   string  `json:"libelle,omitempty"`
	Date      string  `json:"dateTransaction,omitempty"`
}

// TransactionPage is a paged slice of wallet history.
type TransactionPage struct {
	Content       []Transaction `json:"content"`
	TotalElements int           `json:"totalElements"`
	Page          int           `json:"number"`
	Size          int           `json:"size"`
}

// Retrait is a withdrawal request against a wallet balance.
type Retrait struct {
	ID       int     `json:"idRetrait,omitempty"`
	Montant  float64 `json:"montant"`
	Statut   string  `json:"statut,omitempty"`
	DateDemande string `json:"dateDemande,omitempty"`
}
